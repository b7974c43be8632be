// Package marketdata loads curves, calendars and portfolios from external
// sources (Postgres, YAML files) and hands back constructed in-memory values.
// The pricing core never depends on this package.
package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/quantive/filib/calendar"
	"github.com/quantive/filib/curve"
)

// Store reads reference data from Postgres.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres using a lib/pq DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CurvePillars loads the discount-factor pillars of a named curve as of a
// given date, ordered by pillar date.
func (s *Store) CurvePillars(ctx context.Context, curveID string, asOf time.Time) ([]curve.Pillar, error) {
	const q = `
		SELECT pillar_date, discount_factor
		FROM curve_pillars
		WHERE curve_id = $1 AND as_of = $2
		ORDER BY pillar_date`

	rows, err := s.db.QueryContext(ctx, q, curveID, asOf)
	if err != nil {
		return nil, fmt.Errorf("marketdata: query curve pillars for %s: %w", curveID, err)
	}
	defer rows.Close()

	var pillars []curve.Pillar
	for rows.Next() {
		var p curve.Pillar
		if err := rows.Scan(&p.Date, &p.DF); err != nil {
			return nil, fmt.Errorf("marketdata: scan curve pillar: %w", err)
		}
		pillars = append(pillars, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketdata: iterate curve pillars: %w", err)
	}
	return pillars, nil
}

// Curve loads pillars and builds a discount curve in one step.
func (s *Store) Curve(ctx context.Context, curveID string, referenceDate time.Time, method curve.Interpolation) (curve.DiscountCurve, error) {
	pillars, err := s.CurvePillars(ctx, curveID, referenceDate)
	if err != nil {
		return nil, err
	}
	return curve.NewFromDiscountFactors(referenceDate, pillars, method, curveDayCount)
}

// Holidays loads a named holiday calendar.
func (s *Store) Holidays(ctx context.Context, name string) (calendar.Calendar, error) {
	const q = `
		SELECT holiday
		FROM calendar_holidays
		WHERE calendar_name = $1`

	rows, err := s.db.QueryContext(ctx, q, name)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("marketdata: query holidays for %s: %w", name, err)
	}
	defer rows.Close()

	var holidays []time.Time
	for rows.Next() {
		var h time.Time
		if err := rows.Scan(&h); err != nil {
			return calendar.Calendar{}, fmt.Errorf("marketdata: scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return calendar.Calendar{}, fmt.Errorf("marketdata: iterate holidays: %w", err)
	}
	return calendar.New(holidays...), nil
}
