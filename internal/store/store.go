// Package store handles SQLite persistence for progress state.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for per-word progress records. Records
// are grouped into named stores, one per catalog.
type Store struct {
	db   *sql.DB
	logf func(format string, args ...any)
}

// errNoDatabase marks writes against a store that opened degraded.
var errNoDatabase = errors.New("progress database unavailable")

// Name derives the persistence key for a catalog name.
func Name(catalogName string) string {
	if catalogName == "" {
		catalogName = "Default"
	}
	return "word-progress-" + catalogName
}

// Open opens or creates the SQLite database and applies migrations.
// A database that cannot be opened or migrated (a corrupt file, an
// unwritable directory) is logged and the store degrades to an empty
// in-memory view: loads return nothing, saves are logged and dropped.
// Saved progress is never worth refusing to start over.
func Open(path string) *Store {
	store := &Store{
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format, args...)
		},
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		store.logf("failed to create db directory, continuing without saved progress: %v\n", err)
		return store
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		store.logf("failed to open db, continuing without saved progress: %v\n", err)
		return store
	}
	store.db = db
	if err := store.migrate(); err != nil {
		store.logf("failed to migrate db, continuing without saved progress: %v\n", err)
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		store.db = nil
	}
	return store
}

// SetLogger replaces the logger used for swallowed persistence errors.
func (s *Store) SetLogger(logf func(format string, args ...any)) {
	s.logf = logf
}

// Degraded reports whether the store has no backing database.
func (s *Store) Degraded() bool {
	return s.db == nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress (
			store TEXT NOT NULL,
			word TEXT NOT NULL,
			known INTEGER NOT NULL DEFAULT 0,
			favorite INTEGER NOT NULL DEFAULT 0,
			seen_count INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			last_reviewed TEXT,
			next_due TEXT,
			PRIMARY KEY (store, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_store ON progress(store);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the full mapping for a named store. Losing progress is
// recoverable while crashing the session is not, so any persistence
// failure degrades to an empty mapping and is only logged.
func (s *Store) Load(ctx context.Context, name string) map[string]model.ProgressState {
	result := map[string]model.ProgressState{}
	if s.db == nil {
		return result
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, known, favorite, seen_count, correct_count, streak, last_reviewed, next_due
		 FROM progress WHERE store = ?`, name)
	if err != nil {
		s.logf("failed to load progress for %s: %v\n", name, err)
		return result
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var word string
		var state model.ProgressState
		var lastReviewed, nextDue sql.NullString
		if err := rows.Scan(&word, &state.Known, &state.Favorite,
			&state.SeenCount, &state.CorrectCount, &state.Streak,
			&lastReviewed, &nextDue); err != nil {
			s.logf("failed to scan progress for %s: %v\n", name, err)
			return map[string]model.ProgressState{}
		}
		state.LastReviewed = parseNullTime(lastReviewed)
		state.NextDue = parseNullTime(nextDue)
		result[word] = state
	}
	if err := rows.Err(); err != nil {
		s.logf("failed to read progress for %s: %v\n", name, err)
		return map[string]model.ProgressState{}
	}
	return result
}

// Get returns the stored state for one word, or the default state.
func (s *Store) Get(ctx context.Context, name, word string) (model.ProgressState, error) {
	var state model.ProgressState
	var lastReviewed, nextDue sql.NullString
	if s.db == nil {
		return state, nil
	}
	err := s.db.QueryRowContext(ctx,
		`SELECT known, favorite, seen_count, correct_count, streak, last_reviewed, next_due
		 FROM progress WHERE store = ? AND word = ?`, name, word).
		Scan(&state.Known, &state.Favorite, &state.SeenCount,
			&state.CorrectCount, &state.Streak, &lastReviewed, &nextDue)
	if err == sql.ErrNoRows {
		return model.ProgressState{}, nil
	}
	if err != nil {
		return model.ProgressState{}, fmt.Errorf("failed to get progress: %w", err)
	}
	state.LastReviewed = parseNullTime(lastReviewed)
	state.NextDue = parseNullTime(nextDue)
	return state, nil
}

// Apply replaces the entry for word with transition(currentOrDefault)
// and persists it before returning. A persistence failure is logged,
// not surfaced: the in-memory state returned to the caller stays the
// source of truth for the session.
func (s *Store) Apply(ctx context.Context, name, word string, transition func(model.ProgressState) model.ProgressState) model.ProgressState {
	current, err := s.Get(ctx, name, word)
	if err != nil {
		s.logf("failed to read progress for %s/%s: %v\n", name, word, err)
		current = model.ProgressState{}
	}
	next := transition(current)
	if err := s.put(ctx, name, word, next); err != nil {
		s.logf("failed to save progress for %s/%s: %v\n", name, word, err)
	}
	return next
}

// Save persists one word's state, replacing any existing row.
func (s *Store) Save(ctx context.Context, name, word string, state model.ProgressState) error {
	return s.put(ctx, name, word, state)
}

func (s *Store) put(ctx context.Context, name, word string, state model.ProgressState) error {
	if s.db == nil {
		return errNoDatabase
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (store, word, known, favorite, seen_count, correct_count, streak, last_reviewed, next_due)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (store, word) DO UPDATE SET
			known = excluded.known,
			favorite = excluded.favorite,
			seen_count = excluded.seen_count,
			correct_count = excluded.correct_count,
			streak = excluded.streak,
			last_reviewed = excluded.last_reviewed,
			next_due = excluded.next_due`,
		name, word, state.Known, state.Favorite,
		state.SeenCount, state.CorrectCount, state.Streak,
		formatNullTime(state.LastReviewed), formatNullTime(state.NextDue))
	return err
}

// ReplaceAll swaps the entire mapping for a named store in one
// transaction. Used by the progress import boundary.
func (s *Store) ReplaceAll(ctx context.Context, name string, mapping map[string]model.ProgressState) (err error) {
	if s.db == nil {
		return fmt.Errorf("failed to replace progress: %w", errNoDatabase)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM progress WHERE store = ?`, name); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO progress (store, word, known, favorite, seen_count, correct_count, streak, last_reviewed, next_due)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for word, state := range mapping {
		if _, err = stmt.ExecContext(ctx, name, word, state.Known, state.Favorite,
			state.SeenCount, state.CorrectCount, state.Streak,
			formatNullTime(state.LastReviewed), formatNullTime(state.NextDue)); err != nil {
			return fmt.Errorf("failed to insert progress: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress: %w", err)
	}
	return nil
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &parsed
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}
