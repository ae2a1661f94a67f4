package engine

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tatianab/mystery-game/internal/story"
)

// starters open a solve attempt for each puzzle kind.
var starters = map[story.PuzzleKind]func(g *Game, ctx context.Context){
	story.PuzzleWord:   askQuestion,
	story.PuzzleNumber: askQuestion,
	story.PuzzleCombat: startCombat,
	story.PuzzleAlways: func(g *Game, ctx context.Context) { g.solvedWith(ctx, g.level.def.Puzzle.Success) },
	story.PuzzleNone: func(g *Game, _ context.Context) {
		g.say(or(g.level.def.Puzzle.Prompt, "There is no puzzle to solve here."))
	},
}

// checks are the exact-match predicates for answer puzzles.
var checks = map[story.PuzzleKind]func(answer, input string) bool{
	story.PuzzleWord: func(answer, input string) bool {
		return normalize(answer) == normalize(input)
	},
	story.PuzzleNumber: func(answer, input string) bool {
		want, ok := parseNumber(answer)
		if !ok {
			return false
		}
		got, ok := parseNumber(input)
		return ok && got == want
	},
}

func (g *Game) beginSolve(ctx context.Context) {
	p := g.level.def.Puzzle
	if p.RequiresSearch && !g.level.scene.Investigated() {
		g.say(or(p.NotReady, "You should search the room first."))
		return
	}
	start, ok := starters[p.Kind]
	if !ok {
		g.logger.Error("no solver for puzzle", zap.String("kind", string(p.Kind)))
		g.say("This puzzle cannot be solved.")
		return
	}
	start(g, ctx)
}

func askQuestion(g *Game, _ context.Context) {
	if p := g.level.def.Puzzle.Prompt; p != "" {
		g.say(p)
	}
	g.await = awaitAnswer
}

func (g *Game) handleAnswer(ctx context.Context, input string) {
	g.await = awaitMenu
	p := g.level.def.Puzzle
	check, ok := checks[p.Kind]
	if !ok || !check(p.Answer, input) {
		g.record("Wrong answer in " + g.level.def.Name)
		g.say(or(p.Failure, "That's not right. Try again."))
		return
	}
	g.solvedWith(ctx, or(p.Success, "Correct!"))
}

func startCombat(g *Game, _ context.Context) {
	p := g.level.def.Puzzle
	if p.Prompt != "" {
		g.say(p.Prompt)
	}
	g.combat = NewCombat(g.story.Player, p.Opponent, g.opponent)
	g.record("Combat started against " + p.Opponent.Name)
	g.say(g.combat.Status())
	g.await = awaitMove
}

func (g *Game) handleMove(ctx context.Context, input string) {
	move, ok := ParseMove(input)
	if !ok {
		g.sayf("Invalid move %q. Choose attack, charge or defend.", input)
		return
	}

	lines, outcome := g.combat.Round(move)
	for _, line := range lines {
		g.say(line)
	}
	if outcome == Ongoing {
		g.say(g.combat.Status())
		return
	}

	p := g.level.def.Puzzle
	g.logger.Info("combat finished",
		zap.String("opponent", p.Opponent.Name),
		zap.Stringer("outcome", outcome),
		zap.Int("rounds", g.combat.Rounds()))
	g.combat = nil
	g.await = awaitMenu

	switch outcome {
	case Win:
		g.solvedWith(ctx, or(p.Success, "You win the fight!"))
	case Loss:
		g.record("Lost the fight against " + p.Opponent.Name)
		g.say(or(p.Loss, "You have been defeated."))
	case Draw:
		g.record("Drew the fight against " + p.Opponent.Name)
		g.say(or(p.Draw, "You both collapse."))
	}
}

func (g *Game) solvedWith(ctx context.Context, text string) {
	if text != "" {
		g.say(text)
	}
	g.solved(ctx)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// parseNumber is a validated Atoi that tolerates surrounding space.
func parseNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}
