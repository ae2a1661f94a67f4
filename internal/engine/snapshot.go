package engine

// Snapshot is a read-only view of the game for display.
type Snapshot struct {
	Case       string
	Player     string
	Phase      Phase
	Level      int // 0-based
	Levels     int
	LevelName  string
	Location   string
	Clues      []string
	Inventory  []string
	Statements []string
	Motives    []string
	Fight      *FightStatus
}

type FightStatus struct {
	Player   Fighter
	Opponent Fighter
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Case:       g.story.Title,
		Player:     g.player.Name,
		Phase:      g.phase,
		Level:      g.player.Level,
		Levels:     len(g.story.Levels),
		Clues:      g.player.Clues.Items(),
		Inventory:  g.player.Inventory.Items(),
		Statements: g.player.Statements.Items(),
		Motives:    g.player.Motives.Items(),
	}
	if g.level != nil {
		s.LevelName = g.level.def.Name
		s.Location = g.level.scene.Location
	}
	if g.combat != nil {
		s.Fight = &FightStatus{Player: *g.combat.Player, Opponent: *g.combat.Opponent}
	}
	return s
}
