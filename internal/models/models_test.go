package models

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSaveRecordYAML(t *testing.T) {
	rec := SaveRecord{
		PlayerName: "Ada",
		Level:      2,
		Clues:      []string{"Torn fabric"},
		Inventory:  []string{"Broken Key Part 1", "Broken Key Part 2"},
		Motives:    []string{"Miss Ivy's motive: resentment"},
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}

	var rec2 SaveRecord
	err = yaml.Unmarshal(data, &rec2)
	if err != nil {
		t.Fatalf("Failed to unmarshal record: %v", err)
	}

	if rec2.PlayerName != rec.PlayerName {
		t.Errorf("Expected player %s, got %s", rec.PlayerName, rec2.PlayerName)
	}

	if len(rec2.Inventory) != 2 {
		t.Errorf("Expected 2 inventory items, got %d", len(rec2.Inventory))
	}
}

func TestPlayerSetName(t *testing.T) {
	p := NewPlayer()
	if err := p.SetName("   "); !errors.Is(err, ErrBlankName) {
		t.Fatalf("expected ErrBlankName, got %v", err)
	}
	if err := p.SetName("  Ada "); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
}

func TestPlayerAdvanceIsMonotonic(t *testing.T) {
	p := NewPlayer()
	if err := p.AdvanceTo(3); err != nil {
		t.Fatalf("AdvanceTo(3): %v", err)
	}
	if err := p.AdvanceTo(1); !errors.Is(err, ErrLevelRegression) {
		t.Fatalf("expected ErrLevelRegression, got %v", err)
	}
	if p.Level != 3 {
		t.Errorf("level changed on rejected regression: %d", p.Level)
	}
}

func TestPlayerRecordRoundTrip(t *testing.T) {
	p := NewPlayer()
	_ = p.SetName("Ada")
	p.Level = 1
	p.Clues.Add("a clue")
	p.Inventory.Add("Broken Key Part 1")

	got := PlayerFromRecord(p.Record())
	if got.Name != "Ada" || got.Level != 1 {
		t.Fatalf("unexpected player %+v", got)
	}
	if !got.Clues.Contains("a clue") || !got.Inventory.Contains("Broken Key Part 1") {
		t.Errorf("ledgers not restored: clues=%v inventory=%v", got.Clues.Items(), got.Inventory.Items())
	}
}
