/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists the company profile and the company's extra holidays in a single
  local database file, so a restart keeps the configuration the payslip
  calculator depends on.

INTERFACES IMPLEMENTED:
  company.Store:         the company profile document
  calendar.HolidayStore: company extra holidays

KEY TABLES:
  profiles: one row per profile document, keyed by factory.ProfileKey.
            The document column holds the JSON written by factory.ProfileFactory;
            version is bumped on every save.
  holidays: company holidays, unique per (date, name)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Readers don't block the writer
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/holerite.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - company/profile.go: Store interface
  - calendar/month.go: HolidayStore interface
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/company"
	"github.com/warp/holerite/factory"
)

const dateLayout = "2006-01-02"

// Store implements company.Store and calendar.HolidayStore using SQLite.
type Store struct {
	db       *sql.DB
	mu       sync.RWMutex
	profiles *factory.ProfileFactory
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, profiles: factory.NewProfileFactory()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Company profile documents
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Company holidays (on top of the national list)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(date, name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE (company.Store interface)
// =============================================================================

// Load returns the saved profile, or company.Default() when none was saved.
func (s *Store) Load(ctx context.Context) (company.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM profiles WHERE id = ?", factory.ProfileKey,
	).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return company.Default(), nil
	}
	if err != nil {
		return company.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return s.profiles.ParseProfile(doc)
}

// Save replaces the saved profile.
func (s *Store) Save(ctx context.Context, p company.Profile) error {
	doc, err := s.profiles.MarshalProfile(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO profiles (id, document, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			version = profiles.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, factory.ProfileKey, doc, now, now); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// =============================================================================
// HOLIDAY STORE (calendar.HolidayStore interface)
// =============================================================================

// SaveHoliday saves a holiday. A missing id is generated; saving an existing
// (date, name) pair updates its recurring flag and keeps the stored id.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	if err := h.Validate(); err != nil {
		return calendar.Holiday{}, err
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, name) DO UPDATE SET
			recurring = excluded.recurring
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		h.ID,
		h.Date.Format(dateLayout),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	).Scan(&h.ID)
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("save holiday: %w", err)
	}
	h.Date = dayOf(h.Date)
	return h, nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", calendar.ErrHolidayNotFound, id)
	}
	return nil
}

// ListHolidays returns all stored holidays ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryHolidays(ctx,
		"SELECT id, date, name, recurring FROM holidays ORDER BY date ASC, name ASC",
	)
}

// HolidaysIn returns the holidays that fall in the given month. Recurring
// holidays match on month only and are moved to the requested year.
func (s *Store) HolidaysIn(ctx context.Context, year int, month time.Month) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, date, name, recurring
		FROM holidays
		WHERE (recurring = FALSE AND strftime('%Y-%m', date) = ?)
		   OR (recurring = TRUE AND strftime('%m', date) = ?)
		ORDER BY strftime('%d', date) ASC, name ASC
	`

	stored, err := s.queryHolidays(ctx, query,
		fmt.Sprintf("%04d-%02d", year, int(month)),
		fmt.Sprintf("%02d", int(month)),
	)
	if err != nil {
		return nil, err
	}

	holidays := make([]calendar.Holiday, 0, len(stored))
	for _, h := range stored {
		d, ok := h.OccursIn(year, month)
		if !ok {
			continue
		}
		h.Date = d
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (s *Store) queryHolidays(ctx context.Context, query string, args ...any) ([]calendar.Holiday, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		h.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: %w", h.ID, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Reset clears all data (for testing).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"profiles", "holidays"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
