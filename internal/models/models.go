package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBlankName       = errors.New("player name is blank")
	ErrLevelRegression = errors.New("level index cannot decrease")
)

// Player is the detective's progress through a case.
type Player struct {
	Name       string
	Level      int // 0-based index of the current level
	Inventory  *Ledger
	Clues      *Ledger
	Statements *Ledger // witness statements
	Motives    *Ledger // suspect motives
}

func NewPlayer() *Player {
	return &Player{
		Inventory:  NewLedger(),
		Clues:      NewLedger(),
		Statements: NewLedger(),
		Motives:    NewLedger(),
	}
}

// SetName validates and stores the detective's name.
func (p *Player) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	p.Name = name
	return nil
}

// AdvanceTo moves the player to the given level. The level index never goes backwards.
func (p *Player) AdvanceTo(level int) error {
	if level < p.Level {
		return fmt.Errorf("advance from %d to %d: %w", p.Level, level, ErrLevelRegression)
	}
	p.Level = level
	return nil
}

// Record captures the persisted subset of the player's state.
func (p *Player) Record() SaveRecord {
	return SaveRecord{
		PlayerName: p.Name,
		Level:      p.Level,
		Clues:      p.Clues.Items(),
		Inventory:  p.Inventory.Items(),
		Statements: p.Statements.Items(),
		Motives:    p.Motives.Items(),
	}
}

// PlayerFromRecord rebuilds a player from a save record.
func PlayerFromRecord(rec SaveRecord) *Player {
	return &Player{
		Name:       rec.PlayerName,
		Level:      rec.Level,
		Clues:      NewLedger(rec.Clues...),
		Inventory:  NewLedger(rec.Inventory...),
		Statements: NewLedger(rec.Statements...),
		Motives:    NewLedger(rec.Motives...),
	}
}

// SaveRecord is what the persistence gateway reads and writes.
type SaveRecord struct {
	PlayerName string   `yaml:"player_name" json:"player_name"`
	Level      int      `yaml:"current_level" json:"current_level"`
	Clues      []string `yaml:"clues" json:"clues"`
	Inventory  []string `yaml:"inventory" json:"inventory"`
	Statements []string `yaml:"witness_statements,omitempty" json:"witness_statements,omitempty"`
	Motives    []string `yaml:"suspect_motives,omitempty" json:"suspect_motives,omitempty"`
}

// CaseFile is an archived, completed investigation.
type CaseFile struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	Case        string    `json:"case"`
	Levels      int       `json:"levels"`
	Clues       []string  `json:"clues,omitempty"`
	Inventory   []string  `json:"inventory,omitempty"`
	Statements  []string  `json:"witness_statements,omitempty"`
	Motives     []string  `json:"suspect_motives,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
