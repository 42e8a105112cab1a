package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/transport"
)

// Store errors.
var (
	// ErrNotFound is returned for run IDs not in the store.
	ErrNotFound = errors.New("history: run not found")

	// ErrInvalidRun is returned when a run lacks a scene or source.
	ErrInvalidRun = errors.New("history: invalid run")
)

// Run is one finished transport run with its per-region totals.
type Run struct {
	ID        int64
	Scene     string
	Source    string
	Particles int
	Ticks     int
	Dose      bool
	CreatedAt time.Time
	Rows      []transport.Row
}

// Store keeps runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history: database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", path, err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: %w", err)
	}
	rad.Logger().Debug("history: opened", "path", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(t time.Time) int64    { return t.UTC().UnixMilli() }
func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// Save stores r and its rows and returns the new run ID. A zero CreatedAt
// is set to the current time.
func (s *Store) Save(ctx context.Context, r Run) (int64, error) {
	if strings.TrimSpace(r.Scene) == "" || strings.TrimSpace(r.Source) == "" {
		return 0, fmt.Errorf("%w: scene and source are required", ErrInvalidRun)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("history: begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (scene, source, particles, ticks, dose, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Scene, r.Source, r.Particles, r.Ticks, r.Dose, toMillis(r.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: run id: %w", err)
	}
	for i, row := range r.Rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deposits (run_id, position, region, energy) VALUES (?, ?, ?, ?)`,
			id, i, row.Region, row.Energy); err != nil {
			return 0, fmt.Errorf("history: insert deposit %q: %w", row.Region, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("history: commit run: %w", err)
	}
	rad.Logger().Info("history: run saved", "id", id, "scene", r.Scene, "source", r.Source)
	return id, nil
}

// Get returns the run with the given ID and its rows.
func (s *Store) Get(ctx context.Context, id int64) (Run, error) {
	r := Run{ID: id}
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT scene, source, particles, ticks, dose, created_at FROM runs WHERE id = ?`, id).
		Scan(&r.Scene, &r.Source, &r.Particles, &r.Ticks, &r.Dose, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("history: get run %d: %w", id, err)
	}
	r.CreatedAt = fromMillis(created)

	r.Rows, err = s.rows(ctx,
		`SELECT region, energy FROM deposits WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// List returns up to limit runs, newest first, without rows. A
// non-positive limit returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rs, err := s.db.QueryContext(ctx,
		`SELECT id, scene, source, particles, ticks, dose, created_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer func() { _ = rs.Close() }()

	var runs []Run
	for rs.Next() {
		var r Run
		var created int64
		if err := rs.Scan(&r.ID, &r.Scene, &r.Source, &r.Particles, &r.Ticks, &r.Dose, &created); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		runs = append(runs, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	return runs, nil
}

// Totals sums the deposits of every run on scene per region, in the order
// regions first appeared.
func (s *Store) Totals(ctx context.Context, scene string) ([]transport.Row, error) {
	return s.rows(ctx, `SELECT d.region, SUM(d.energy)
FROM deposits d JOIN runs r ON r.id = d.run_id
WHERE r.scene = ?
GROUP BY d.region
ORDER BY MIN(d.run_id * 1048576 + d.position)`, scene)
}

// Delete removes a run and its rows.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("history: delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("history: delete run %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func (s *Store) rows(ctx context.Context, query string, args ...any) ([]transport.Row, error) {
	rs, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query deposits: %w", err)
	}
	defer func() { _ = rs.Close() }()

	var out []transport.Row
	for rs.Next() {
		var row transport.Row
		if err := rs.Scan(&row.Region, &row.Energy); err != nil {
			return nil, fmt.Errorf("history: scan deposit: %w", err)
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("history: query deposits: %w", err)
	}
	return out, nil
}
