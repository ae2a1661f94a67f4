package models

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Section markers of the text save format. A save written before inventory
// tracking has no markers at all: every line after the level is a clue.
const (
	inventoryMarker  = "[inventory]"
	statementsMarker = "[statements]"
	motivesMarker    = "[motives]"
)

// textCodec writes
//
//	<player name>
//	<level index>
//	<clue>...
//	[inventory]
//	<item>...
//	[statements]
//	<statement>...
//	[motives]
//	<motive>...
//
// with backslashes and newlines in values escaped.
type textCodec struct{}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", "")
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

func (textCodec) marshal(rec SaveRecord) ([]byte, error) {
	var buf bytes.Buffer
	line := func(s string) {
		buf.WriteString(escaper.Replace(s))
		buf.WriteByte('\n')
	}

	line(rec.PlayerName)
	buf.WriteString(strconv.Itoa(rec.Level) + "\n")
	for _, c := range rec.Clues {
		line(c)
	}
	buf.WriteString(inventoryMarker + "\n")
	for _, item := range rec.Inventory {
		line(item)
	}
	if len(rec.Statements) > 0 {
		buf.WriteString(statementsMarker + "\n")
		for _, s := range rec.Statements {
			line(s)
		}
	}
	if len(rec.Motives) > 0 {
		buf.WriteString(motivesMarker + "\n")
		for _, m := range rec.Motives {
			line(m)
		}
	}
	return buf.Bytes(), nil
}

func (textCodec) unmarshal(data []byte) (SaveRecord, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	if len(lines) < 2 {
		return SaveRecord{}, fmt.Errorf("%w: expected name and level lines", ErrMalformedSave)
	}

	level, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return SaveRecord{}, fmt.Errorf("%w: level %q is not a number", ErrMalformedSave, lines[1])
	}
	rec := SaveRecord{
		PlayerName: unescaper.Replace(lines[0]),
		Level:      level,
	}

	section := &rec.Clues
	for _, l := range lines[2:] {
		switch l {
		case inventoryMarker:
			section = &rec.Inventory
			continue
		case statementsMarker:
			section = &rec.Statements
			continue
		case motivesMarker:
			section = &rec.Motives
			continue
		case "":
			continue
		}
		*section = append(*section, unescaper.Replace(l))
	}
	return rec, nil
}
