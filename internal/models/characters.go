package models

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Character is anything the detective can talk to.
//
// The first Interact returns the character's substantive line and latches
// HasInteracted; every later call returns the fallback line.
type Character interface {
	Name() string
	Role() string
	Interact() string
	HasInteracted() bool
	Action() string
}

// latch is the shared one-way "has interacted" flag.
type latch struct {
	interacted bool
	fallback   string
	action     string
}

func (l *latch) HasInteracted() bool { return l.interacted }

// first flips the latch and reports whether this was the first contact.
func (l *latch) first() bool {
	if l.interacted {
		return false
	}
	l.interacted = true
	return true
}

// Trait is an NPC's disposition towards the detective.
type Trait string

const (
	TraitFriendly    Trait = "friendly"
	TraitHostile     Trait = "hostile"
	TraitIndifferent Trait = "indifferent"
)

// ParseTrait normalises a trait, accepting "angry" and "neutral" as aliases.
func ParseTrait(s string) Trait {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "friendly":
		return TraitFriendly
	case "hostile", "angry":
		return TraitHostile
	case "indifferent", "neutral":
		return TraitIndifferent
	}
	return ""
}

// CharacterOpts are the optional overrides shared by every variant.
type CharacterOpts struct {
	Fallback string // line returned after the first interaction
	Action   string // flavor line printed alongside the dialogue
}

type NPC struct {
	latch
	name     string
	role     string
	dialogue string
	trait    Trait
}

func NewNPC(name, role, dialogue string, trait Trait, opts CharacterOpts) *NPC {
	return &NPC{
		latch:    latch{fallback: opts.Fallback, action: opts.Action},
		name:     name,
		role:     role,
		dialogue: dialogue,
		trait:    trait,
	}
}

func (n *NPC) Name() string { return n.name }
func (n *NPC) Role() string { return n.role }
func (n *NPC) Trait() Trait { return n.trait }

func (n *NPC) Interact() string {
	if n.first() {
		if n.role == "" {
			return fmt.Sprintf("%s: %s", n.name, n.dialogue)
		}
		return fmt.Sprintf("%s (%s): %s", n.name, n.role, n.dialogue)
	}
	if n.fallback != "" {
		return n.fallback
	}
	return fmt.Sprintf("%s is no longer interested in talking.", n.name)
}

func (n *NPC) Action() string {
	if n.action != "" {
		return n.action
	}
	switch n.trait {
	case TraitFriendly:
		return fmt.Sprintf("%s smiles at you gently.", n.name)
	case TraitHostile:
		return fmt.Sprintf("%s glares and refuses to cooperate with you.", n.name)
	case TraitIndifferent:
		return fmt.Sprintf("%s shrugs at you and seems to not care.", n.name)
	}
	return ""
}

type Suspect struct {
	latch
	name         string
	alibi        string
	confirmation string
	motive       string
}

func NewSuspect(name, alibi, confirmation, motive string, opts CharacterOpts) *Suspect {
	return &Suspect{
		latch:        latch{fallback: opts.Fallback, action: opts.Action},
		name:         name,
		alibi:        alibi,
		confirmation: confirmation,
		motive:       motive,
	}
}

func (s *Suspect) Name() string   { return s.name }
func (s *Suspect) Role() string   { return "Suspect" }
func (s *Suspect) Motive() string { return s.motive }

// MotiveLine is the entry recorded in the motives ledger.
func (s *Suspect) MotiveLine() string {
	return fmt.Sprintf("%s's motive: %s", s.name, s.motive)
}

func (s *Suspect) Interact() string {
	if s.first() {
		if s.alibi == "" {
			return fmt.Sprintf("%s: I don't have anything to say to you.", s.name)
		}
		return strings.TrimSpace(fmt.Sprintf("%s: I was %s. %s", s.name, strings.TrimSuffix(s.alibi, "."), s.confirmation))
	}
	if s.fallback != "" {
		return s.fallback
	}
	return fmt.Sprintf("%s: You've already asked me! Go away!", s.name)
}

func (s *Suspect) Action() string {
	if s.action != "" {
		return s.action
	}
	return fmt.Sprintf("%s nervously looks around and fidgets with their fingers.", s.name)
}

type Witness struct {
	latch
	name      string
	statement string
	observed  string
}

func NewWitness(name, statement, observed string, opts CharacterOpts) *Witness {
	return &Witness{
		latch:     latch{fallback: opts.Fallback, action: opts.Action},
		name:      name,
		statement: statement,
		observed:  observed,
	}
}

func (w *Witness) Name() string      { return w.name }
func (w *Witness) Role() string      { return "Witness" }
func (w *Witness) Statement() string { return w.statement }

// StatementLine is the entry recorded in the witness statements ledger.
func (w *Witness) StatementLine() string {
	return fmt.Sprintf("%s's statement: %s", w.name, w.statement)
}

func (w *Witness) Interact() string {
	if w.first() {
		if w.observed == "" {
			return fmt.Sprintf("%s: %s", w.name, w.statement)
		}
		return fmt.Sprintf("%s: %s It was a %s", w.name, w.statement, w.observed)
	}
	if w.fallback != "" {
		return w.fallback
	}
	return fmt.Sprintf("%s: Please catch them!", w.name)
}

func (w *Witness) Action() string {
	if w.action != "" {
		return w.action
	}
	return fmt.Sprintf("%s trembles and points at the window.", w.name)
}

var (
	namePrefixes = []string{"Mr.", "Mrs.", "Miss", "Dr."}
	surnames     = []string{
		"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
		"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson",
		"White", "Harris", "Martin", "Thompson", "Garcia", "Martinez",
		"Robinson", "Clark", "Rodriguez", "Lewis", "Lee",
	}
)

// GenerateName picks a random "<prefix> <surname>" for an unnamed NPC.
func GenerateName(rng *rand.Rand) string {
	return namePrefixes[rng.IntN(len(namePrefixes))] + " " + surnames[rng.IntN(len(surnames))]
}
