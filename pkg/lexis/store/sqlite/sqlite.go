package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/cognicore/lexis/pkg/lexis/cooccur"
	"github.com/cognicore/lexis/pkg/lexis/counts"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

const memoryPath = ":memory:"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db   *sql.DB
	lock *flock.Flock
}

// OpenSQLite opens (creating if needed) a report database at path.
// A lock file next to the database keeps two writers from sharing it;
// if another process holds it, ErrStoreUnavailable is returned.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	var lock *flock.Flock
	if path != memoryPath {
		lock = flock.New(path + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s is in use", internalerr.ErrStoreUnavailable, path)
		}
	}

	db, err := open(ctx, path)
	if err != nil {
		if lock != nil {
			lock.Unlock()
		}
		return nil, err
	}

	return &sqliteStore{db: db, lock: lock}, nil
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database exists per connection, and the
	// CLI is a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection and releases the lock
func (s *sqliteStore) Close() error {
	err := s.db.Close()
	if s.lock != nil {
		if uerr := s.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	return err
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	window_size INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	has_frequencies INTEGER NOT NULL DEFAULT 0,
	has_unique INTEGER NOT NULL DEFAULT 0,
	has_pairs INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS frequencies (
	run_id TEXT NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS unique_tokens (
	run_id TEXT NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS pairs (
	run_id TEXT NOT NULL,
	t1 TEXT NOT NULL,
	t2 TEXT NOT NULL,
	PRIMARY KEY(run_id, t1, t2),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveReport writes a report and all of its rows in one transaction.
// Saving a report with an existing ID replaces it.
func (s *sqliteStore) SaveReport(ctx context.Context, r *report.Report) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: report has no ID", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, r.ID); err != nil {
		return err
	}

	const stmt = `
INSERT INTO runs (id, input, window_size, created_at, has_frequencies, has_unique, has_pairs)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.Input,
		r.Window,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		flag(r.Frequencies != nil),
		flag(r.Unique != nil),
		flag(r.Pairs != nil),
	)
	if err != nil {
		return err
	}

	if err := insertFrequencies(ctx, tx, r.ID, r.Frequencies); err != nil {
		return err
	}
	if err := insertUnique(ctx, tx, r.ID, r.Unique); err != nil {
		return err
	}
	if err := insertPairs(ctx, tx, r.ID, r.Pairs); err != nil {
		return err
	}

	return tx.Commit()
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func insertFrequencies(ctx context.Context, tx *sql.Tx, runID string, freq counts.Frequencies) error {
	if len(freq) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO frequencies (run_id, token, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for tok, n := range freq {
		if _, err := stmt.ExecContext(ctx, runID, tok, n); err != nil {
			return err
		}
	}
	return nil
}

func insertUnique(ctx context.Context, tx *sql.Tx, runID string, set counts.Set) error {
	if len(set) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO unique_tokens (run_id, token) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for tok := range set {
		if _, err := stmt.ExecContext(ctx, runID, tok); err != nil {
			return err
		}
	}
	return nil
}

func insertPairs(ctx context.Context, tx *sql.Tx, runID string, pairs cooccur.PairSet) error {
	if len(pairs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pairs (run_id, t1, t2) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for p := range pairs {
		if _, err := stmt.ExecContext(ctx, runID, p.A, p.B); err != nil {
			return err
		}
	}
	return nil
}

// LoadReport reads a stored report back
func (s *sqliteStore) LoadReport(ctx context.Context, id string) (*report.Report, bool, error) {
	var (
		r                       report.Report
		createdAt               string
		hasFreq, hasUniq, hasPr int
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, input, window_size, created_at, has_frequencies, has_unique, has_pairs
FROM runs WHERE id = ?`, id).Scan(&r.ID, &r.Input, &r.Window, &createdAt, &hasFreq, &hasUniq, &hasPr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, false, fmt.Errorf("run %s: bad created_at %q: %w", id, createdAt, err)
	}

	if hasFreq != 0 {
		if r.Frequencies, err = s.loadFrequencies(ctx, id); err != nil {
			return nil, false, err
		}
	}
	if hasUniq != 0 {
		if r.Unique, err = s.loadUnique(ctx, id); err != nil {
			return nil, false, err
		}
	}
	if hasPr != 0 {
		if r.Pairs, err = s.loadPairs(ctx, id); err != nil {
			return nil, false, err
		}
	}

	return &r, true, nil
}

func (s *sqliteStore) loadFrequencies(ctx context.Context, id string) (counts.Frequencies, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT token, count FROM frequencies WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	freq := make(counts.Frequencies)
	for rows.Next() {
		var tok string
		var n int
		if err := rows.Scan(&tok, &n); err != nil {
			return nil, err
		}
		freq[tok] = n
	}
	return freq, rows.Err()
}

func (s *sqliteStore) loadUnique(ctx context.Context, id string) (counts.Set, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT token FROM unique_tokens WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(counts.Set)
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		set[tok] = struct{}{}
	}
	return set, rows.Err()
}

func (s *sqliteStore) loadPairs(ctx context.Context, id string) (cooccur.PairSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT t1, t2 FROM pairs WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make(cooccur.PairSet)
	for rows.Next() {
		var p cooccur.Pair
		if err := rows.Scan(&p.A, &p.B); err != nil {
			return nil, err
		}
		pairs[p] = struct{}{}
	}
	return pairs, rows.Err()
}

// Runs lists stored runs, newest first. Distinct comes from the unique set,
// or from the frequency table when only frequencies were saved.
func (s *sqliteStore) Runs(ctx context.Context) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.input, r.window_size, r.created_at,
	(SELECT COALESCE(SUM(count), 0) FROM frequencies f WHERE f.run_id = r.id),
	CASE WHEN r.has_unique = 1
		THEN (SELECT COUNT(*) FROM unique_tokens u WHERE u.run_id = r.id)
		ELSE (SELECT COUNT(*) FROM frequencies f WHERE f.run_id = r.id)
	END,
	(SELECT COUNT(*) FROM pairs p WHERE p.run_id = r.id)
FROM runs r
ORDER BY r.id DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Input, &run.Window, &createdAt, &run.Tokens, &run.Distinct, &run.Pairs); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("run %s: bad created_at %q: %w", run.ID, createdAt, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
