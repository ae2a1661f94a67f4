package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/tatianab/mystery-game/internal/story"
)

type Move string

const (
	MoveAttack Move = "attack"
	MoveDefend Move = "defend"
	MoveCharge Move = "charge"
)

var moves = []Move{MoveAttack, MoveDefend, MoveCharge}

// ParseMove accepts a move name or its short alias (atk, def, chg).
func ParseMove(s string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack", "atk":
		return MoveAttack, true
	case "defend", "def":
		return MoveDefend, true
	case "charge", "chg":
		return MoveCharge, true
	}
	return "", false
}

// RandomMove picks a move uniformly.
func RandomMove(rng *rand.Rand) func() Move {
	return func() Move { return moves[rng.IntN(len(moves))] }
}

type Fighter struct {
	Name    string
	Health  int
	Damage  int
	Charged bool
}

func newFighter(f story.Fighter) *Fighter {
	return &Fighter{Name: f.Name, Health: f.Health, Damage: f.Damage}
}

func (f *Fighter) down() bool { return f.Health <= 0 }

type Outcome int

const (
	Ongoing Outcome = iota
	Win
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// Combat is one fight between the detective and an opponent.
// Each round resolves the player's move first, then the opponent's.
type Combat struct {
	Player   *Fighter
	Opponent *Fighter
	opponent func() Move
	rounds   int
}

func NewCombat(player, opponent story.Fighter, choose func() Move) *Combat {
	return &Combat{
		Player:   newFighter(player),
		Opponent: newFighter(opponent),
		opponent: choose,
	}
}

// Round plays one exchange and returns the narration and the outcome so far.
func (c *Combat) Round(playerMove Move) ([]string, Outcome) {
	opponentMove := c.opponent()
	c.rounds++
	lines := []string{
		fmt.Sprintf("%s chose: %s", c.Player.Name, playerMove),
		fmt.Sprintf("%s chose: %s", c.Opponent.Name, opponentMove),
	}
	lines = append(lines, resolve(c.Player, c.Opponent, playerMove, opponentMove)...)
	lines = append(lines, resolve(c.Opponent, c.Player, opponentMove, playerMove)...)
	return lines, c.Outcome()
}

func (c *Combat) Rounds() int { return c.rounds }

func (c *Combat) Outcome() Outcome {
	switch {
	case c.Player.down() && c.Opponent.down():
		return Draw
	case c.Opponent.down():
		return Win
	case c.Player.down():
		return Loss
	}
	return Ongoing
}

// Status is the per-round health readout.
func (c *Combat) Status() string {
	return fmt.Sprintf("%s's Health: %d, Charge: %t\n%s's Health: %d, Charge: %t",
		c.Player.Name, c.Player.Health, c.Player.Charged,
		c.Opponent.Name, c.Opponent.Health, c.Opponent.Charged)
}

// resolve applies actor's move against target, who chose targetMove.
func resolve(actor, target *Fighter, move, targetMove Move) []string {
	switch move {
	case MoveAttack:
		damage := actor.Damage
		if actor.Charged {
			damage *= 2
			actor.Charged = false
		}
		var lines []string
		if targetMove == MoveDefend {
			reduced := damage / 4
			lines = append(lines, fmt.Sprintf("%s defends and reduces damage by %d.", target.Name, damage-reduced))
			damage = reduced
		}
		target.Health -= damage
		return append(lines, fmt.Sprintf("%s deals %d damage to %s.", actor.Name, damage, target.Name))
	case MoveCharge:
		actor.Charged = !actor.Charged
		status := "uncharged"
		if actor.Charged {
			status = "charged"
		}
		return []string{fmt.Sprintf("%s has %s their attack.", actor.Name, status)}
	case MoveDefend:
		return []string{fmt.Sprintf("%s takes a defensive stance.", actor.Name)}
	}
	return nil
}
