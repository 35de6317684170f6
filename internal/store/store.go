// Package store provides SQLite persistence for entries and lanes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"daygrid/internal/dateutil"
	"daygrid/internal/entry"
)

// ErrNothingToUpdate is returned when an update carries no fields.
var ErrNothingToUpdate = errors.New("no fields to update")

// Store implements the entry and lane persistence contracts over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			date       DATE NOT NULL,
			start_time TIME NOT NULL,
			end_time   TIME NOT NULL,
			lane_id    TEXT NOT NULL DEFAULT '',
			parent_id  TEXT NOT NULL DEFAULT '',
			depth      INTEGER NOT NULL DEFAULT 0,
			title      TEXT NOT NULL,
			color      TEXT NOT NULL DEFAULT '',
			location   TEXT NOT NULL DEFAULT '',
			notes      TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
		CREATE INDEX IF NOT EXISTS idx_entries_parent ON entries(parent_id);

		CREATE TABLE IF NOT EXISTS lanes (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			color      TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// CreateEntry inserts a new entry, assigning an id if the entry has none.
func (s *Store) CreateEntry(ctx context.Context, e *entry.Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO entries (
			id, date, start_time, end_time, lane_id, parent_id, depth,
			title, color, location, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		dateutil.FormatDate(e.Date),
		e.Start,
		e.End,
		e.LaneID,
		e.ParentID,
		e.Depth,
		e.Title,
		e.Color,
		e.Location,
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// Changes carries the partial fields of an entry update. Nil fields are
// left untouched; a drag commit sends only what the gesture changed.
type Changes struct {
	Start  *string
	End    *string
	LaneID *string
	Color  *string
	Title  *string
	Notes  *string
}

// UpdateEntry applies a partial update to an entry.
func (s *Store) UpdateEntry(ctx context.Context, id string, c Changes) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("start_time", c.Start)
	add("end_time", c.End)
	add("lane_id", c.LaneID)
	add("color", c.Color)
	add("title", c.Title)
	add("notes", c.Notes)

	if len(sets) == 0 {
		return ErrNothingToUpdate
	}
	args = append(args, id)

	query := "UPDATE entries SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %s: %w", id, entry.ErrEntryNotFound)
	}
	return nil
}

// DeleteEntry removes an entry. Its children are reparented to the deleted
// entry's parent so the graph stays acyclic and fully connected.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var parentID string
	err = tx.QueryRowContext(ctx, `SELECT parent_id FROM entries WHERE id = ?`, id).Scan(&parentID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("entry %s: %w", id, entry.ErrEntryNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE entries SET parent_id = ? WHERE parent_id = ?`, parentID, id); err != nil {
		return fmt.Errorf("reparenting children: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// EntriesByDate returns all entries on a date, in display order.
func (s *Store) EntriesByDate(ctx context.Context, date time.Time) ([]*entry.Entry, error) {
	query := `
		SELECT id, date, start_time, end_time, lane_id, parent_id, depth,
		       title, color, location, notes, created_at
		FROM entries
		WHERE date = ?
		ORDER BY start_time, end_time DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query, dateutil.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// GetEntry retrieves an entry by id. Returns nil when it does not exist.
func (s *Store) GetEntry(ctx context.Context, id string) (*entry.Entry, error) {
	query := `
		SELECT id, date, start_time, end_time, lane_id, parent_id, depth,
		       title, color, location, notes, created_at
		FROM entries
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*entry.Entry, error) {
	var (
		e         entry.Entry
		date      string
		createdAt string
	)
	err := row.Scan(
		&e.ID,
		&date,
		&e.Start,
		&e.End,
		&e.LaneID,
		&e.ParentID,
		&e.Depth,
		&e.Title,
		&e.Color,
		&e.Location,
		&e.Notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	e.Date, err = dateutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing entry date: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	return &e, nil
}

// Lanes returns all lanes in display order.
func (s *Store) Lanes(ctx context.Context) ([]entry.Lane, error) {
	query := `SELECT id, name, sort_order, color FROM lanes ORDER BY sort_order, name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying lanes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lanes []entry.Lane
	for rows.Next() {
		var l entry.Lane
		if err := rows.Scan(&l.ID, &l.Name, &l.Order, &l.Color); err != nil {
			return nil, fmt.Errorf("scanning lane: %w", err)
		}
		lanes = append(lanes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lanes: %w", err)
	}
	return lanes, nil
}

// SaveLane inserts or updates a lane, assigning an id if needed.
func (s *Store) SaveLane(ctx context.Context, l *entry.Lane) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `
		INSERT INTO lanes (id, name, sort_order, color) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			sort_order = excluded.sort_order, color = excluded.color
	`
	if _, err := s.db.ExecContext(ctx, query, l.ID, l.Name, l.Order, l.Color); err != nil {
		return fmt.Errorf("saving lane: %w", err)
	}
	return nil
}

// DeleteLane removes a lane. Entries in the lane fall back to uncategorized.
func (s *Store) DeleteLane(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE entries SET lane_id = '' WHERE lane_id = ?`, id); err != nil {
		return fmt.Errorf("uncategorizing entries: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM lanes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lane: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("lane %s: %w", id, entry.ErrLaneNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
