package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const SaveDir = ".saves"

var (
	ErrNoSave        = errors.New("no save file")
	ErrMalformedSave = errors.New("malformed save file")
)

// SaveFile is the persistence gateway for a single save slot. The format is
// picked from the extension: .yaml/.yml and .json hold a structured record,
// anything else uses the line-oriented text format.
type SaveFile struct {
	Path string
}

func NewSaveFile(path string) *SaveFile {
	if path == "" {
		path = filepath.Join(SaveDir, "save_game.txt")
	}
	return &SaveFile{Path: path}
}

type codec interface {
	marshal(rec SaveRecord) ([]byte, error)
	unmarshal(data []byte) (SaveRecord, error)
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	case ".json":
		return jsonCodec{}
	}
	return textCodec{}
}

func (f *SaveFile) Exists() bool {
	info, err := os.Stat(f.Path)
	return err == nil && !info.IsDir()
}

// Save overwrites the save file with rec.
func (f *SaveFile) Save(rec SaveRecord) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	data, err := codecFor(f.Path).marshal(rec)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Load reads the whole save file. It returns ErrNoSave when there is nothing to load.
func (f *SaveFile) Load() (SaveRecord, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return SaveRecord{}, fmt.Errorf("%s: %w", f.Path, ErrNoSave)
	}
	if err != nil {
		return SaveRecord{}, fmt.Errorf("read save: %w", err)
	}
	rec, err := codecFor(f.Path).unmarshal(data)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	if err := validateRecord(rec); err != nil {
		return SaveRecord{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return rec, nil
}

func validateRecord(rec SaveRecord) error {
	if strings.TrimSpace(rec.PlayerName) == "" {
		return fmt.Errorf("%w: missing player name", ErrMalformedSave)
	}
	if rec.Level < 0 {
		return fmt.Errorf("%w: negative level %d", ErrMalformedSave, rec.Level)
	}
	return nil
}

type yamlCodec struct{}

func (yamlCodec) marshal(rec SaveRecord) ([]byte, error) {
	return yaml.Marshal(rec)
}

func (yamlCodec) unmarshal(data []byte) (SaveRecord, error) {
	var rec SaveRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	return rec, nil
}

type jsonCodec struct{}

func (jsonCodec) marshal(rec SaveRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "    ")
}

func (jsonCodec) unmarshal(data []byte) (SaveRecord, error) {
	var rec SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	return rec, nil
}

// SaveInfo describes a loadable save found on disk.
type SaveInfo struct {
	Path   string
	Player string
	Level  int
}

// ListSaves returns the loadable saves in dir, sorted by path.
func ListSaves(dir string) ([]SaveInfo, error) {
	if dir == "" {
		dir = SaveDir
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []SaveInfo{}, nil
	}
	if err != nil {
		return nil, err
	}

	saves := []SaveInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".yaml", ".yml", ".json":
		default:
			continue
		}
		path := filepath.Join(dir, entry.Name())
		rec, err := NewSaveFile(path).Load()
		if err != nil {
			// Not a save, or one we cannot read; skip it.
			continue
		}
		saves = append(saves, SaveInfo{Path: path, Player: rec.PlayerName, Level: rec.Level})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Path < saves[j].Path })
	return saves, nil
}
