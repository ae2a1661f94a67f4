package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tatianab/mystery-game/internal/config"
	"github.com/tatianab/mystery-game/internal/engine"
	"github.com/tatianab/mystery-game/internal/logging"
	"github.com/tatianab/mystery-game/internal/story"
)

const maxTurns = 200

// A scripted detective plays the configured case straight from its definition:
// every talk option, every door, a search, then the puzzle answer. Nothing is saved.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	c, err := story.Load(cfg.Case)
	if err != nil {
		log.Fatalf("Failed to load case: %v", err)
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = 1
	}
	g := engine.New(c,
		engine.WithLogger(logger.Named("simulation")),
		engine.WithRand(rand.New(rand.NewPCG(seed, seed))),
	)

	s := &sim{ctx: ctx, g: g}
	s.show("", g.Start(ctx))
	s.send("Sim")

	for !s.over() {
		snap := g.Snapshot()
		fmt.Printf("\n--- Level %d/%d: %s ---\n", snap.Level+1, snap.Levels, snap.LevelName)
		s.playLevel(c.Levels[snap.Level], snap.Level)
		if !s.over() && g.Snapshot().Level == snap.Level {
			fmt.Println("Simulation stuck: the level did not advance.")
			break
		}
	}

	snap := g.Snapshot()
	fmt.Printf("\n=== %s after %d turns ===\n", snap.Phase, s.turns)
	fmt.Printf("Clues: %s\n", strings.Join(snap.Clues, "; "))
	fmt.Printf("Inventory: %s\n", strings.Join(snap.Inventory, "; "))
	logger.Info("simulation finished", zap.Stringer("phase", snap.Phase), zap.Int("turns", s.turns))
}

type sim struct {
	ctx   context.Context
	g     *engine.Game
	last  engine.Output
	turns int
}

func (s *sim) over() bool {
	return s.last.Phase.Done() || s.turns >= maxTurns
}

func (s *sim) send(input string) engine.Output {
	if s.over() {
		return s.last
	}
	s.turns++
	out := s.g.Handle(s.ctx, input)
	s.show(input, out)
	return out
}

func (s *sim) show(input string, out engine.Output) {
	if input != "" {
		fmt.Printf("> %s\n", input)
	}
	if out.Text != "" {
		fmt.Println(out.Text)
	}
	s.last = out
}

func (s *sim) playLevel(def story.Level, index int) {
	moved := func() bool { return s.over() || s.g.Snapshot().Level != index }

	s.send("3")
	for _, opt := range def.Talk.Options {
		if moved() {
			return
		}
		s.send("1")
		s.send(opt.Key)
	}
	for _, d := range def.Doors {
		if moved() {
			return
		}
		s.send("11")
		s.send(strconv.Itoa(d.Number))
	}

	for !moved() {
		switch def.Puzzle.Kind {
		case story.PuzzleWord, story.PuzzleNumber:
			s.send("4")
			s.send(def.Puzzle.Answer)
		case story.PuzzleCombat:
			s.fight()
		case story.PuzzleAlways:
			s.send("4")
		default:
			// Nothing left to try; the clue threshold either closed the level or it never will.
			return
		}
	}
}

// fight charges once, then attacks until the fight ends. A lost fight is retried by the caller.
func (s *sim) fight() {
	out := s.send("4")
	moves := []string{"charge"}
	for i := 0; strings.Contains(out.Prompt, "Choose your move") && !s.over(); i++ {
		move := "attack"
		if i < len(moves) {
			move = moves[i]
		}
		out = s.send(move)
	}
}
