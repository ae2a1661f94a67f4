package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func sampleRecord() SaveRecord {
	return SaveRecord{
		PlayerName: "Ada",
		Level:      3,
		Clues: []string{
			"Text on the wall that states, 'Every good house master leaves behind a Le....",
			"A old tattered recipe\nThe flour weight is 10 times the sugar",
			`C:\cellar\chest`,
		},
		Inventory:  []string{"Broken Key Part 1", "Broken Key Part 2", "Broken Key Part 3"},
		Statements: []string{"Librarian Euclidia's statement: I sent Miss Ivy out to buy some chalk."},
		Motives:    []string{"Miss Ivy's motive: resentment", "Lady Rosalind's motive: reputation"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"save_game.txt", "save_game.yaml", "save_game.yml", "save_game.json", "save"} {
		t.Run(name, func(t *testing.T) {
			f := NewSaveFile(filepath.Join(t.TempDir(), "nested", name))
			require.False(t, f.Exists())

			want := sampleRecord()
			require.NoError(t, f.Save(want))
			require.True(t, f.Exists())

			got, err := f.Load()
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	f := NewSaveFile(filepath.Join(t.TempDir(), "save_game.txt"))
	require.NoError(t, f.Save(sampleRecord()))
	require.NoError(t, f.Save(SaveRecord{PlayerName: "Ada", Level: 0}))

	got, err := f.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(SaveRecord{PlayerName: "Ada"}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("stale content survived overwrite (-want +got):\n%s", diff)
	}
}

func TestLoadLegacyTextWithoutInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save_game.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ada\n1\nTorn fabric\nMissing Knife\n"), 0644))

	got, err := NewSaveFile(path).Load()
	require.NoError(t, err)
	require.Equal(t, "Ada", got.PlayerName)
	require.Equal(t, 1, got.Level)
	require.Equal(t, []string{"Torn fabric", "Missing Knife"}, got.Clues)
	require.Empty(t, got.Inventory)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewSaveFile(filepath.Join(t.TempDir(), "nope.txt")).Load()
	require.ErrorIs(t, err, ErrNoSave)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"only a name", "save.txt", "Ada\n"},
		{"level is not a number", "save.txt", "Ada\nthree\n"},
		{"blank name", "save.txt", "\n2\n"},
		{"negative level", "save.txt", "Ada\n-1\n"},
		{"broken json", "save.json", "{\"player_name\": "},
		{"json without name", "save.json", `{"current_level": 1}`},
		{"broken yaml", "save.yaml", "player_name: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := NewSaveFile(path).Load()
			require.ErrorIs(t, err, ErrMalformedSave)
		})
	}
}

func TestListSaves(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewSaveFile(filepath.Join(dir, "b.yaml")).Save(SaveRecord{PlayerName: "Bea", Level: 2}))
	require.NoError(t, NewSaveFile(filepath.Join(dir, "a.txt")).Save(SaveRecord{PlayerName: "Ada", Level: 1}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# not a save"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("x"), 0644))

	saves, err := ListSaves(dir)
	require.NoError(t, err)
	require.Equal(t, []SaveInfo{
		{Path: filepath.Join(dir, "a.txt"), Player: "Ada", Level: 1},
		{Path: filepath.Join(dir, "b.yaml"), Player: "Bea", Level: 2},
	}, saves)

	saves, err = ListSaves(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Empty(t, saves)
}
