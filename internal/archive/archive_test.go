package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mystery-game/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	first := models.CaseFile{
		Player:      "Ada",
		Case:        "drawing-room",
		Levels:      1,
		Clues:       []string{"Torn fabric", "Missing Knife", "A suspicious figure in dark clothing"},
		CompletedAt: base,
	}
	second := models.CaseFile{
		Player:      "Bea",
		Case:        "mansion",
		Levels:      7,
		Clues:       []string{"A poisonous plant, that might be something to do with 'shade'."},
		Inventory:   []string{"Broken Key Part 1", "Broken Key Part 2"},
		Statements:  []string{"Gardener's statement: Dr. Steele was with me."},
		Motives:     []string{"Mr. Blackthorn's motive: debt"},
		CompletedAt: base.Add(time.Hour),
	}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, cf := range got {
		_, err := ulid.ParseStrict(cf.ID)
		require.NoError(t, err, "ids are ULIDs")
	}
	want := []models.CaseFile{second, first}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(models.CaseFile{}, "ID"), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	got, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Bea", got[0].Player)
}

func TestRecordKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Record(ctx, models.CaseFile{ID: "case-1", Player: "Ada", Case: "mansion", Levels: 7}))
	require.Error(t, s.Record(ctx, models.CaseFile{ID: "case-1", Player: "Ada", Case: "mansion", Levels: 7}))

	got, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "case-1", got[0].ID)
	require.False(t, got[0].CompletedAt.IsZero())
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, models.CaseFile{Player: "Ada", Case: "mansion", Levels: 7}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
