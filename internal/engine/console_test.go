package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunConsole(t *testing.T) {
	g := newGame(t, "mansion")
	var out bytes.Buffer
	err := RunConsole(context.Background(), g, strings.NewReader("Ada\n3\n4\nlegacy\n8\n"), &out)
	require.NoError(t, err)

	transcript := out.String()
	require.Contains(t, transcript, "Please enter your name to continue: ")
	require.Contains(t, transcript, "Hello Ada!")
	require.Contains(t, transcript, "Welcome to The Study!")
	require.True(t, strings.HasSuffix(transcript, "Thanks for playing! Goodbye.\n"))
	require.Equal(t, Quit, g.Phase())
}

func TestRunConsoleEOFQuits(t *testing.T) {
	g := newGame(t, "mansion")
	var out bytes.Buffer
	require.NoError(t, RunConsole(context.Background(), g, strings.NewReader("Ada\n"), &out))
	require.Equal(t, Quit, g.Phase())
	require.Contains(t, out.String(), "Thanks for playing! Goodbye.")
}

func TestRunConsoleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunConsole(ctx, newGame(t, "mansion"), strings.NewReader("Ada\n"), &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}
