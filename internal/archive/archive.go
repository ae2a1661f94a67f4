// Package archive keeps a SQLite record of every case the detective has closed.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/tatianab/mystery-game/internal/models"
)

const DefaultLimit = 20

// Store is a SQLite-backed case-file archive.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS case_files (
		id           TEXT PRIMARY KEY,
		player       TEXT NOT NULL,
		case_name    TEXT NOT NULL,
		levels       INTEGER NOT NULL,
		clues        TEXT NOT NULL,
		inventory    TEXT NOT NULL,
		statements   TEXT NOT NULL,
		motives      TEXT NOT NULL,
		completed_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_case_files_completed ON case_files(completed_at DESC);
	`)
	return err
}

func (s *Store) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// Record stores a closed case. A missing ID or completion time is filled in.
func (s *Store) Record(ctx context.Context, cf models.CaseFile) error {
	if cf.CompletedAt.IsZero() {
		cf.CompletedAt = time.Now()
	}
	if cf.ID == "" {
		cf.ID = s.newID(cf.CompletedAt)
	}

	lists := make([]string, 0, 4)
	for _, l := range [][]string{cf.Clues, cf.Inventory, cf.Statements, cf.Motives} {
		b, err := json.Marshal(nonNil(l))
		if err != nil {
			return fmt.Errorf("encode case file: %w", err)
		}
		lists = append(lists, string(b))
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO case_files (id, player, case_name, levels, clues, inventory, statements, motives, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cf.ID, cf.Player, cf.Case, cf.Levels, lists[0], lists[1], lists[2], lists[3],
		cf.CompletedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert case file: %w", err)
	}
	return nil
}

// List returns up to limit case files, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]models.CaseFile, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player, case_name, levels, clues, inventory, statements, motives, completed_at
		FROM case_files
		ORDER BY completed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query case files: %w", err)
	}
	defer rows.Close()

	var out []models.CaseFile
	for rows.Next() {
		cf, err := scanCaseFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cf)
	}
	return out, rows.Err()
}

func scanCaseFile(rows *sql.Rows) (models.CaseFile, error) {
	var (
		cf                                    models.CaseFile
		clues, inventory, statements, motives string
		completedAt                           string
	)
	if err := rows.Scan(&cf.ID, &cf.Player, &cf.Case, &cf.Levels, &clues, &inventory, &statements, &motives, &completedAt); err != nil {
		return cf, fmt.Errorf("scan case file: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst *[]string
	}{
		{clues, &cf.Clues},
		{inventory, &cf.Inventory},
		{statements, &cf.Statements},
		{motives, &cf.Motives},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return cf, fmt.Errorf("decode case file %s: %w", cf.ID, err)
		}
	}

	t, err := time.Parse(time.RFC3339Nano, completedAt)
	if err != nil {
		return cf, fmt.Errorf("parse completed_at of %s: %w", cf.ID, err)
	}
	cf.CompletedAt = t
	return cf, nil
}

func nonNil(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
