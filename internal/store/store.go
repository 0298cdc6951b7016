// Package store persists scenarios in SQLite. Forecast results are never
// stored; they are recomputed from the scenario on demand.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/moolah/internal/scenario"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario matches an id or name.
var ErrNotFound = errors.New("scenario not found")

// Store provides SQLite-backed scenario storage.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Summary is one row of ListScenarios.
type Summary struct {
	ID           string
	Name         string
	Start        civil.Date
	InitialValue float64
	Deltas       int
	UpdatedAt    time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScenario stores sc under its name, replacing any scenario with the same
// name, and returns its id. Replacing keeps the original id and created_at.
func (s *Store) SaveScenario(sc *scenario.Scenario) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC().Format(time.RFC3339)

	var id string
	err = tx.QueryRow("SELECT id FROM predictions WHERE name = ?", sc.Name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.Exec(`INSERT INTO predictions (id, name, start, initial_value, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, sc.Name, nullDate(sc.Start), sc.InitialValue, now, now)
	case err == nil:
		_, err = tx.Exec(`UPDATE predictions SET start = ?, initial_value = ?, updated_at = ? WHERE id = ?`,
			nullDate(sc.Start), sc.InitialValue, now, id)
	}
	if err != nil {
		return "", err
	}

	// Replace delta rows wholesale
	if _, err := tx.Exec("DELETE FROM deltas WHERE prediction_id = ?", id); err != nil {
		return "", err
	}

	for i, r := range sc.Deltas {
		var mode, unit, lowUnit, highUnit sql.NullString
		var amount, low, high sql.NullFloat64
		if u := r.Uncertainty; u != nil {
			mode = sql.NullString{String: u.Mode, Valid: true}
			unit = sql.NullString{String: u.Unit, Valid: u.Unit != ""}
			amount = sql.NullFloat64{Float64: u.Amount, Valid: true}
			lowUnit = sql.NullString{String: u.LowUnit, Valid: u.LowUnit != ""}
			low = sql.NullFloat64{Float64: u.Low, Valid: true}
			highUnit = sql.NullString{String: u.HighUnit, Valid: u.HighUnit != ""}
			high = sql.NullFloat64{Float64: u.High, Valid: true}
		}
		_, err = tx.Exec(`INSERT INTO deltas
			(prediction_id, position, name, kind, value, start_on, end_on, on_date, dates,
			 weekday, month_day, skip, unc_mode, unc_unit, unc_amount,
			 unc_low_unit, unc_low, unc_high_unit, unc_high)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.Name, string(r.Kind), r.Value,
			nullDate(r.Start), nullDate(r.End), nullDate(r.On), joinDates(r.Dates),
			r.Weekday, r.MonthDay, r.Skip, mode, unit, amount,
			lowUnit, low, highUnit, high,
		)
		if err != nil {
			return "", fmt.Errorf("saving delta %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LoadScenario reads the scenario with the given id.
func (s *Store) LoadScenario(id string) (*scenario.Scenario, error) {
	sc := &scenario.Scenario{}
	var start sql.NullString
	err := s.db.QueryRow("SELECT name, start, initial_value FROM predictions WHERE id = ?", id).
		Scan(&sc.Name, &start, &sc.InitialValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if sc.Start, err = parseDate(start); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT
		name, kind, value, start_on, end_on, on_date, dates, weekday, month_day, skip,
		unc_mode, unc_unit, unc_amount, unc_low_unit, unc_low, unc_high_unit, unc_high
		FROM deltas WHERE prediction_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r scenario.Record
		var kind string
		var startOn, endOn, onDate, dates, weekday sql.NullString
		var monthDay sql.NullInt64
		var mode, unit, lowUnit, highUnit sql.NullString
		var amount, low, high sql.NullFloat64

		err := rows.Scan(
			&r.Name, &kind, &r.Value, &startOn, &endOn, &onDate, &dates, &weekday, &monthDay, &r.Skip,
			&mode, &unit, &amount, &lowUnit, &low, &highUnit, &high,
		)
		if err != nil {
			return nil, err
		}

		r.Kind = scenario.Kind(kind)
		r.Weekday = weekday.String
		r.MonthDay = int(monthDay.Int64)
		if r.Start, err = parseDate(startOn); err != nil {
			return nil, err
		}
		if r.End, err = parseDate(endOn); err != nil {
			return nil, err
		}
		if r.On, err = parseDate(onDate); err != nil {
			return nil, err
		}
		if r.Dates, err = splitDates(dates); err != nil {
			return nil, err
		}
		if mode.Valid {
			r.Uncertainty = &scenario.UncertaintyRecord{
				Mode:     mode.String,
				Unit:     unit.String,
				Amount:   amount.Float64,
				LowUnit:  lowUnit.String,
				Low:      low.Float64,
				HighUnit: highUnit.String,
				High:     high.Float64,
			}
		}
		sc.Deltas = append(sc.Deltas, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sc, nil
}

// FindByName returns the id of the scenario with the given name.
func (s *Store) FindByName(name string) (string, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM predictions WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return id, err
}

// ListScenarios returns every stored scenario, most recently updated first.
func (s *Store) ListScenarios() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT
		p.id, p.name, p.start, p.initial_value, p.updated_at,
		(SELECT COUNT(*) FROM deltas d WHERE d.prediction_id = p.id)
		FROM predictions p ORDER BY p.updated_at DESC, p.name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var start sql.NullString
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &start, &sum.InitialValue, &updated, &sum.Deltas); err != nil {
			return nil, err
		}
		d, err := parseDate(start)
		if err != nil {
			return nil, err
		}
		sum.Start = d.Date
		sum.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario and its deltas.
func (s *Store) DeleteScenario(id string) error {
	res, err := s.db.Exec("DELETE FROM predictions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ScenarioCount returns the number of stored scenarios.
func (s *Store) ScenarioCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&count)
	return count, err
}

func nullDate(d scenario.Date) sql.NullString {
	if !d.Set() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseDate(s sql.NullString) (scenario.Date, error) {
	if !s.Valid || s.String == "" {
		return scenario.Date{}, nil
	}
	d, err := civil.ParseDate(s.String)
	if err != nil {
		return scenario.Date{}, fmt.Errorf("stored date %q: %w", s.String, err)
	}
	return scenario.NewDate(d), nil
}

// joinDates stores custom dates as a space-separated list.
func joinDates(ds []scenario.Date) sql.NullString {
	if len(ds) == 0 {
		return sql.NullString{}
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return sql.NullString{String: strings.Join(parts, " "), Valid: true}
}

func splitDates(s sql.NullString) ([]scenario.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	fields := strings.Fields(s.String)
	out := make([]scenario.Date, 0, len(fields))
	for _, f := range fields {
		d, err := civil.ParseDate(f)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", f, err)
		}
		out = append(out, scenario.NewDate(d))
	}
	return out, nil
}
