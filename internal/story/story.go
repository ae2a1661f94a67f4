// Package story defines the cases the detective can play and loads them from YAML.
package story

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cases/*.yaml
var casesFS embed.FS

var (
	ErrUnknownCase = errors.New("unknown case")
	ErrInvalidCase = errors.New("invalid case")
)

// Case is a complete mystery: an ordered list of levels plus the surrounding narration.
type Case struct {
	Title       string  `yaml:"title"`
	ShortName   string  `yaml:"short_name"`
	Description string  `yaml:"description"`
	Welcome     string  `yaml:"welcome"`
	Completion  string  `yaml:"completion"`
	Levels      []Level `yaml:"levels"`
	Player      Fighter `yaml:"detective"` // the detective's combat stats
}

// Level is one scene of a case.
type Level struct {
	Name          string          `yaml:"name"`
	Scene         string          `yaml:"scene"` // crime scene location; defaults to Name
	Intro         string          `yaml:"intro"`
	Clue          string          `yaml:"clue"`
	Hint          string          `yaml:"hint"`
	Reward        string          `yaml:"reward"`
	ClueThreshold int             `yaml:"clue_threshold"`
	Characters    []CharacterSpec `yaml:"characters"`
	Talk          Talk            `yaml:"talk"`
	Search        Search          `yaml:"search"`
	Doors         []Door          `yaml:"doors"`
	Puzzle        Puzzle          `yaml:"puzzle"`
}

type CharacterKind string

const (
	KindNPC     CharacterKind = "npc"
	KindSuspect CharacterKind = "suspect"
	KindWitness CharacterKind = "witness"
)

// CharacterSpec describes a character. Which fields matter depends on Kind.
type CharacterSpec struct {
	Key          string        `yaml:"key"`
	Kind         CharacterKind `yaml:"kind"`
	Name         string        `yaml:"name"` // NPCs without a name get a generated one
	Role         string        `yaml:"role"`
	Dialogue     string        `yaml:"dialogue"`
	Trait        string        `yaml:"trait"`
	Alibi        string        `yaml:"alibi"`
	Confirmation string        `yaml:"confirmation"`
	Motive       string        `yaml:"motive"`
	Statement    string        `yaml:"statement"`
	Observed     string        `yaml:"observed"`
	Fallback     string        `yaml:"fallback"`
	Action       string        `yaml:"action"`
}

// Effects are evidence changes applied to the detective's ledgers.
type Effects struct {
	Statement bool     `yaml:"statement"` // record the level witness's statement
	Motive    bool     `yaml:"motive"`    // record the level suspect's motive
	Clues     []string `yaml:"clues"`
	Items     []string `yaml:"items"`
}

type Talk struct {
	Prompt  string       `yaml:"prompt"`
	Options []TalkOption `yaml:"options"`
}

// TalkOption is one answer to "who would you like to speak to?".
type TalkOption struct {
	Key            string   `yaml:"key"`
	Characters     []string `yaml:"characters"` // character keys, interacted with in order
	Text           string   `yaml:"text"`
	Effects        Effects  `yaml:"effects"`
	RequiresSearch bool     `yaml:"requires_search"`
	Locked         string   `yaml:"locked"` // shown when RequiresSearch is not met
}

type Search struct {
	Text     string  `yaml:"text"`
	Already  string  `yaml:"already"`
	HideClue bool    `yaml:"hide_clue"` // the level clue is only earned by solving
	Effects  Effects `yaml:"effects"`
}

type Door struct {
	Number  int     `yaml:"number"`
	Label   string  `yaml:"label"`
	Text    string  `yaml:"text"`
	Effects Effects `yaml:"effects"`
}

type PuzzleKind string

const (
	PuzzleWord   PuzzleKind = "word"
	PuzzleNumber PuzzleKind = "number"
	PuzzleCombat PuzzleKind = "combat"
	PuzzleAlways PuzzleKind = "always"
	PuzzleNone   PuzzleKind = "none"
)

type Puzzle struct {
	Kind           PuzzleKind `yaml:"kind"`
	Prompt         string     `yaml:"prompt"`
	Question       string     `yaml:"question"`
	Answer         string     `yaml:"answer"`
	Success        string     `yaml:"success"`
	Failure        string     `yaml:"failure"`
	RequiresSearch bool       `yaml:"requires_search"`
	NotReady       string     `yaml:"not_ready"`
	Effects        Effects    `yaml:"effects"`
	Opponent       Fighter    `yaml:"opponent"`
	Loss           string     `yaml:"loss"`
	Draw           string     `yaml:"draw"`
}

// Fighter holds combat stats.
type Fighter struct {
	Name   string `yaml:"name"`
	Health int    `yaml:"health"`
	Damage int    `yaml:"damage"`
}

// SceneName is the crime scene location of the level.
func (l Level) SceneName() string {
	if l.Scene != "" {
		return l.Scene
	}
	return l.Name
}

// PossibleClues lists every clue the level can hand out.
func (l Level) PossibleClues() []string {
	var out []string
	add := func(c ...string) {
		for _, s := range c {
			if s != "" {
				out = append(out, s)
			}
		}
	}
	add(l.Clue)
	add(l.Search.Effects.Clues...)
	add(l.Puzzle.Effects.Clues...)
	for _, o := range l.Talk.Options {
		add(o.Effects.Clues...)
	}
	for _, d := range l.Doors {
		add(d.Effects.Clues...)
	}
	return out
}

// Door returns the door with the given number.
func (l Level) Door(n int) (Door, bool) {
	for _, d := range l.Doors {
		if d.Number == n {
			return d, true
		}
	}
	return Door{}, false
}

// Names lists the embedded cases.
func Names() []string {
	entries, _ := fs.ReadDir(casesFS, "cases")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load returns the embedded case with the given short name.
func Load(name string) (*Case, error) {
	data, err := casesFS.ReadFile("cases/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownCase, name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// LoadFile reads a case from disk.
func LoadFile(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the case for definitions the engine cannot play.
func (c *Case) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCase}, args...)...))
	}

	if len(c.Levels) == 0 {
		fail("case %q has no levels", c.Title)
	}
	for i, l := range c.Levels {
		where := fmt.Sprintf("level %d", i+1)
		if strings.TrimSpace(l.Name) == "" {
			fail("%s has no name", where)
		} else {
			where = fmt.Sprintf("level %q", l.Name)
		}

		chars := make(map[string]CharacterKind)
		for _, ch := range l.Characters {
			if ch.Key == "" {
				fail("%s has a character without a key", where)
				continue
			}
			switch ch.Kind {
			case KindNPC, KindSuspect, KindWitness:
			default:
				fail("%s character %q has unknown kind %q", where, ch.Key, ch.Kind)
			}
			if _, dup := chars[ch.Key]; dup {
				fail("%s has duplicate character key %q", where, ch.Key)
			}
			chars[ch.Key] = ch.Kind
		}
		if n := countKind(l.Characters, KindSuspect); n > 1 {
			fail("%s has %d suspects, at most one is allowed", where, n)
		}
		if n := countKind(l.Characters, KindWitness); n > 1 {
			fail("%s has %d witnesses, at most one is allowed", where, n)
		}

		talkKeys := make(map[string]bool)
		for _, o := range l.Talk.Options {
			k := strings.ToLower(o.Key)
			if talkKeys[k] {
				fail("%s has duplicate talk option %q", where, o.Key)
			}
			talkKeys[k] = true
			for _, ck := range o.Characters {
				if _, ok := chars[ck]; !ok {
					fail("%s talk option %q names unknown character %q", where, o.Key, ck)
				}
			}
		}

		doors := make(map[int]bool)
		for _, d := range l.Doors {
			if doors[d.Number] {
				fail("%s has duplicate door %d", where, d.Number)
			}
			doors[d.Number] = true
		}

		switch l.Puzzle.Kind {
		case PuzzleWord:
			if strings.TrimSpace(l.Puzzle.Answer) == "" {
				fail("%s word puzzle has no answer", where)
			}
		case PuzzleNumber:
			if _, err := strconv.Atoi(strings.TrimSpace(l.Puzzle.Answer)); err != nil {
				fail("%s number puzzle answer %q is not a number", where, l.Puzzle.Answer)
			}
		case PuzzleCombat:
			if c.Player.Health <= 0 || c.Player.Damage <= 0 {
				fail("%s combat needs detective health and damage", where)
			}
			if l.Puzzle.Opponent.Health <= 0 || l.Puzzle.Opponent.Damage <= 0 {
				fail("%s combat opponent needs health and damage", where)
			}
		case PuzzleAlways, PuzzleNone:
		default:
			fail("%s has unknown puzzle kind %q", where, l.Puzzle.Kind)
		}
		if l.ClueThreshold < 0 {
			fail("%s has a negative clue threshold", where)
		}
	}
	return errors.Join(errs...)
}

func countKind(chars []CharacterSpec, kind CharacterKind) int {
	n := 0
	for _, ch := range chars {
		if ch.Kind == kind {
			n++
		}
	}
	return n
}
