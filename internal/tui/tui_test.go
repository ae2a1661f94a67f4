package tui

import (
	"context"
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mystery-game/internal/engine"
	"github.com/tatianab/mystery-game/internal/story"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	c, err := story.Load("mansion")
	require.NoError(t, err)
	g := engine.New(c, engine.WithRand(rand.New(rand.NewPCG(1, 2))))

	m := NewModel(context.Background(), g)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 200})
	m = updated.(model)
	updated, _ = m.Update(m.start()())
	return updated.(model)
}

// submit types input, presses Enter and applies the resulting step.
func submit(t *testing.T, m model, input string) model {
	t.Helper()
	m.textInput.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)
	require.Equal(t, stateWaiting, m.state)
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	return updated.(model)
}

func TestStartShowsNamePrompt(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, statePlaying, m.state)
	require.Equal(t, "Please enter your name to continue:", m.prompt)
	require.Contains(t, m.View(), "The Mansion Murder")
	require.Contains(t, m.View(), "Commands: /quit")
}

func TestPlayUpdatesSidePanel(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "Ada")
	require.Contains(t, m.gameLog, "Welcome to The Mansion!")
	require.Contains(t, m.prompt, "What would you like to do?")

	view := m.View()
	require.Contains(t, view, "DETECTIVE")
	require.Contains(t, view, "Ada")
	require.Contains(t, view, "1/7 The Mansion")

	m = submit(t, m, "3")
	require.Contains(t, m.View(), "- Text on the wall")
	require.Contains(t, m.gameLog, "> 3")
}

func TestEnterIgnoredWhileWaiting(t *testing.T) {
	m := newTestModel(t)
	m.state = stateWaiting
	m.textInput.SetValue("Ada")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, "Ada", updated.(model).textInput.Value())
}

func TestSlashQuitEndsGame(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "Ada")
	m = submit(t, m, "/quit")
	require.Equal(t, stateDone, m.state)
	require.Contains(t, m.gameLog, "Thanks for playing! Goodbye.")
	require.Contains(t, m.View(), "The case is closed.")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}
