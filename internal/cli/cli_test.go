package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/mystery-game/internal/models"
	"github.com/tatianab/mystery-game/internal/story"
)

// setEnv points every file the CLI touches at a temp dir.
func setEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MYSTERY_SAVE_DIR", dir)
	t.Setenv("MYSTERY_SAVE_FILE", "")
	t.Setenv("MYSTERY_ARCHIVE_DB", "")
	t.Setenv("MYSTERY_LOG_FILE", filepath.Join(dir, "mystery.log"))
	t.Setenv("MYSTERY_CASE", "")
	t.Setenv("MYSTERY_HINTS", "static")
	t.Setenv("MYSTERY_SEED", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// drawingRoom closes the drawing-room case: search, two doors, the NPCs, then the suspect and witness.
const drawingRoom = "Ada\n3\n11\n3\n1\nn\n1\ns\n"

func TestPlayPlainClosesCase(t *testing.T) {
	dir := setEnv(t)

	out, err := run(t, drawingRoom, "play", "--plain", "--case", "drawing-room", "--seed", "7")
	require.NoError(t, err)
	require.Contains(t, out, "=== The Poirot Mystery ===")
	require.Contains(t, out, "Please enter your name to continue:")
	require.Contains(t, out, "New clue: Missing Knife")
	require.Contains(t, out, "Congratulations Ada!")

	rec, err := models.NewSaveFile(filepath.Join(dir, "save_game.txt")).Load()
	require.NoError(t, err)
	require.Equal(t, "Ada", rec.PlayerName)
	require.Equal(t, 1, rec.Level)

	out, err = run(t, "", "archive")
	require.NoError(t, err)
	require.Contains(t, out, "Ada")
	require.Contains(t, out, "drawing-room")
}

func TestRootCommandPlays(t *testing.T) {
	setEnv(t)

	out, err := run(t, "", "--plain", "--case", "drawing-room")
	require.NoError(t, err)
	require.Contains(t, out, "=== The Poirot Mystery ===")
	require.Contains(t, out, "Thanks for playing! Goodbye.", "end of input quits")
}

func TestPlayResumesSave(t *testing.T) {
	dir := setEnv(t)
	save := filepath.Join(dir, "slot.yaml")
	require.NoError(t, models.NewSaveFile(save).Save(models.SaveRecord{PlayerName: "Ada", Level: 1}))

	out, err := run(t, "yes\n8\n", "play", "--plain", "--save", save)
	require.NoError(t, err)
	require.Contains(t, out, "Save game found!")
	require.Contains(t, out, "Welcome to The Study!")
	require.Contains(t, out, "Thanks for playing! Goodbye.")
}

func TestPlayErrors(t *testing.T) {
	setEnv(t)

	_, err := run(t, "", "play", "--plain", "--case", "nope")
	require.ErrorIs(t, err, story.ErrUnknownCase)

	_, err = run(t, "", "play", "--plain", "--hints", "gemini")
	require.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = run(t, "", "play", "--plain", "--case-file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "", "play", "--plain", "--log-level", "loud")
	require.ErrorContains(t, err, "log level")
}

func TestSavesAndShow(t *testing.T) {
	dir := setEnv(t)

	out, err := run(t, "", "saves")
	require.NoError(t, err)
	require.Contains(t, out, "No saved games in "+dir)

	require.NoError(t, models.NewSaveFile(filepath.Join(dir, "save_game.txt")).Save(models.SaveRecord{
		PlayerName: "Ada",
		Level:      2,
		Clues:      []string{"Torn fabric"},
		Inventory:  []string{"Broken Key Part 1"},
	}))

	out, err = run(t, "", "saves", dir)
	require.NoError(t, err)
	require.Contains(t, out, "save_game.txt")
	require.Contains(t, out, "Ada")

	out, err = run(t, "", "show")
	require.NoError(t, err)
	require.Equal(t, "Detective: Ada\nLevel: 3\nClues:\n- Torn fabric\nInventory:\n- Broken Key Part 1\n", out)

	out, err = run(t, "", "show", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "player_name: Ada")
	require.Contains(t, out, "current_level: 2")

	out, err = run(t, "", "show", "-f", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"player_name": "Ada"`)

	_, err = run(t, "", "show", "--format", "xml")
	require.ErrorContains(t, err, "unknown format")

	_, err = run(t, "", "show", filepath.Join(dir, "other.txt"))
	require.ErrorIs(t, err, models.ErrNoSave)
}

func TestCases(t *testing.T) {
	setEnv(t)

	out, err := run(t, "", "cases")
	require.NoError(t, err)
	require.Contains(t, out, "mansion")
	require.Contains(t, out, "The Mansion Murder")
	require.Contains(t, out, "drawing-room")
	require.Contains(t, out, "The Poirot Mystery")
}

func TestArchiveEmpty(t *testing.T) {
	setEnv(t)

	out, err := run(t, "", "archive", "--limit", "5")
	require.NoError(t, err)
	require.Equal(t, "No closed cases yet.\n", out)
}
