/*
Package sqlite persists the payroll working data in a single SQLite file.

PURPOSE:
  The calculator is single-user and offline; one SQLite file replaces
  the browser localStorage of the legacy tool. Three concerns live
  here:
  - Parameter catalogs: the freely edited "working" set and the
    snapshot "active" set the computation reads
  - Captures: per-period, per-employee attendance records
  - Settings: small flags (goal met, last capture info)

CATALOG STORAGE:
  Catalogs are stored as one JSON document per set, in the same wire
  format the import/export endpoints speak (factory package). The
  engine never sees JSON; it receives parsed records.

CAPTURES:
  One row per (period_key, employee_id), upserted as the operator
  types. Decimal amounts are stored as TEXT to avoid float drift.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL
  (Write-Ahead Logging) so readers don't block the single writer.

USAGE:
  st, err := sqlite.New("./nomina.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  employees, _, err := st.LoadCatalog(ctx, sqlite.SetActive)

MIGRATION:
  Schema is auto-migrated on New(). The schema is small enough that
  versioned migrations would be overkill here.

SEE ALSO:
  - factory/params.go: the catalog wire format
  - api/handlers.go: the only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
)

// Parameter set names.
const (
	SetWorking = "working"
	SetActive  = "active"
)

// Settings keys.
const (
	SettingGoalMet     = "goal_met"
	SettingCaptureInfo = "capture_info"
)

// ErrCatalogNotFound is returned when a parameter set has never been
// saved.
var ErrCatalogNotFound = errors.New("parameter catalog not found")

// Store persists catalogs, captures and settings.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Parameter catalogs: one JSON document per set
	CREATE TABLE IF NOT EXISTS parameter_sets (
		name TEXT PRIMARY KEY,
		catalog_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Attendance captures: one row per employee per period
	CREATE TABLE IF NOT EXISTS captures (
		period_key TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		absence_days INTEGER NOT NULL DEFAULT 0,
		lateness_count INTEGER NOT NULL DEFAULT 0,
		overtime_hours REAL NOT NULL DEFAULT 0,
		extra_incentive TEXT NOT NULL DEFAULT '0',
		extra_deduction TEXT NOT NULL DEFAULT '0',
		cleaning_approved BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (period_key, employee_id)
	);

	CREATE INDEX IF NOT EXISTS idx_captures_period
		ON captures(period_key);

	-- Small key/value flags
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PARAMETER CATALOGS
// =============================================================================

// SaveCatalog stores a parameter set, replacing the previous version.
func (s *Store) SaveCatalog(ctx context.Context, name string, employees []payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := factory.RenderCatalog(employees)
	if err != nil {
		return fmt.Errorf("failed to render catalog: %w", err)
	}

	query := `
		INSERT INTO parameter_sets (name, catalog_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			catalog_json = excluded.catalog_json,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		name, string(doc), time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadCatalog returns a parameter set and when it was last saved.
// Returns ErrCatalogNotFound if the set was never saved.
func (s *Store) LoadCatalog(ctx context.Context, name string) ([]payroll.Employee, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT catalog_json, updated_at FROM parameter_sets WHERE name = ?",
		name,
	).Scan(&doc, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	employees, err := factory.ParseCatalog([]byte(doc))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stored catalog %q is corrupt: %w", name, err)
	}

	ts, _ := time.Parse(time.RFC3339, updatedAt)
	return employees, ts, nil
}

// Activate snapshots the working set as the active set and returns the
// activation timestamp. Returns ErrCatalogNotFound when there is no
// working set to activate.
func (s *Store) Activate(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	query := `
		INSERT INTO parameter_sets (name, catalog_json, updated_at)
		SELECT ?, catalog_json, ? FROM parameter_sets WHERE name = ?
		ON CONFLICT(name) DO UPDATE SET
			catalog_json = excluded.catalog_json,
			updated_at = excluded.updated_at
	`

	res, err := s.db.ExecContext(ctx, query,
		SetActive, now.Format(time.RFC3339), SetWorking)
	if err != nil {
		return time.Time{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if affected == 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrCatalogNotFound, SetWorking)
	}
	return now, nil
}

// =============================================================================
// CAPTURES
// =============================================================================

// UpsertCapture stores one employee's attendance record for a period.
func (s *Store) UpsertCapture(ctx context.Context, periodKey string, id payroll.EmployeeID, c payroll.PeriodCapture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO captures
		(period_key, employee_id, absence_days, lateness_count, overtime_hours,
		 extra_incentive, extra_deduction, cleaning_approved, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(period_key, employee_id) DO UPDATE SET
			absence_days = excluded.absence_days,
			lateness_count = excluded.lateness_count,
			overtime_hours = excluded.overtime_hours,
			extra_incentive = excluded.extra_incentive,
			extra_deduction = excluded.extra_deduction,
			cleaning_approved = excluded.cleaning_approved,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		periodKey, string(id),
		c.AbsenceDays, c.LatenessCount, c.OvertimeHours,
		c.ExtraIncentive.String(), c.ExtraDeduction.String(),
		c.CleaningApproved,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadCaptures returns every capture of one period. Employees without
// a row are simply absent from the map; the engine treats a missing
// capture as all zeros.
func (s *Store) LoadCaptures(ctx context.Context, periodKey string) (map[payroll.EmployeeID]payroll.PeriodCapture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, absence_days, lateness_count, overtime_hours,
		       extra_incentive, extra_deduction, cleaning_approved
		FROM captures
		WHERE period_key = ?
	`

	rows, err := s.db.QueryContext(ctx, query, periodKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	captures := make(map[payroll.EmployeeID]payroll.PeriodCapture)
	for rows.Next() {
		var id string
		var c payroll.PeriodCapture
		var incentive, deduction string
		if err := rows.Scan(&id, &c.AbsenceDays, &c.LatenessCount, &c.OvertimeHours,
			&incentive, &deduction, &c.CleaningApproved); err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		c.ExtraIncentive, err = decimal.NewFromString(incentive)
		if err != nil {
			return nil, fmt.Errorf("capture %s/%s: bad extra_incentive: %w", periodKey, id, err)
		}
		c.ExtraDeduction, err = decimal.NewFromString(deduction)
		if err != nil {
			return nil, fmt.Errorf("capture %s/%s: bad extra_deduction: %w", periodKey, id, err)
		}
		captures[payroll.EmployeeID(id)] = c
	}
	return captures, rows.Err()
}

// DeleteCaptures removes every capture of one period.
func (s *Store) DeleteCaptures(ctx context.Context, periodKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM captures WHERE period_key = ?", periodKey)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

// SetSetting stores a flag value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

// GetSetting returns a flag value and whether it was ever set.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
