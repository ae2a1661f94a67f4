package engine

import (
	"math/rand/v2"
	"strings"

	"github.com/tatianab/mystery-game/internal/models"
	"github.com/tatianab/mystery-game/internal/story"
)

// level is the live state of the level being played. It owns its characters
// and crime scene; both are discarded when the detective moves on.
type level struct {
	def        story.Level
	index      int
	characters map[string]models.Character
	present    []string // character keys reachable through talk, in order of appearance
	suspect    *models.Suspect
	witness    *models.Witness
	scene      *models.CrimeScene
}

func newLevel(def story.Level, index int, rng *rand.Rand) *level {
	l := &level{
		def:        def,
		index:      index,
		characters: make(map[string]models.Character, len(def.Characters)),
		scene:      models.NewCrimeScene(def.SceneName()),
	}
	for _, spec := range def.Characters {
		opts := models.CharacterOpts{Fallback: spec.Fallback, Action: spec.Action}
		switch spec.Kind {
		case story.KindSuspect:
			l.suspect = models.NewSuspect(spec.Name, spec.Alibi, spec.Confirmation, spec.Motive, opts)
			l.characters[spec.Key] = l.suspect
		case story.KindWitness:
			l.witness = models.NewWitness(spec.Name, spec.Statement, spec.Observed, opts)
			l.characters[spec.Key] = l.witness
		default:
			name := spec.Name
			if name == "" {
				name = models.GenerateName(rng)
			}
			l.characters[spec.Key] = models.NewNPC(name, spec.Role, spec.Dialogue, models.ParseTrait(spec.Trait), opts)
		}
	}

	seen := make(map[string]bool)
	for _, o := range def.Talk.Options {
		for _, key := range o.Characters {
			if !seen[key] {
				seen[key] = true
				l.present = append(l.present, key)
			}
		}
	}
	return l
}

// restore rebuilds the crime scene from clues the player already holds.
func (l *level) restore(clues *models.Ledger) {
	for _, c := range l.def.PossibleClues() {
		if clues.Contains(c) {
			l.scene.AddClue(c)
		}
	}
	if !l.def.Search.HideClue && l.def.Clue != "" && clues.Contains(l.def.Clue) {
		l.scene.Investigate()
	}
}

func (l *level) talkOption(key string) (story.TalkOption, bool) {
	for _, o := range l.def.Talk.Options {
		if strings.EqualFold(o.Key, key) {
			return o, true
		}
	}
	return story.TalkOption{}, false
}

func (l *level) talkPrompt() string {
	if l.def.Talk.Prompt != "" {
		return l.def.Talk.Prompt
	}
	keys := make([]string, len(l.def.Talk.Options))
	for i, o := range l.def.Talk.Options {
		keys[i] = o.Key
	}
	return "Who would you like to speak to? (" + strings.Join(keys, " / ") + ")"
}
