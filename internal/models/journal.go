package models

import "strings"

// DialoguePrefix marks journal entries that quote a character.
const DialoguePrefix = "NPC Dialogue: "

// Journal is the ordered record of what happened during a session.
type Journal struct {
	entries []string
}

func (j *Journal) Log(entry string) {
	j.entries = append(j.entries, entry)
}

func (j *Journal) Entries() []string {
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Dialogue returns the entries that quote a character.
func (j *Journal) Dialogue() []string {
	var out []string
	for _, e := range j.entries {
		if strings.HasPrefix(e, DialoguePrefix) {
			out = append(out, e)
		}
	}
	return out
}
