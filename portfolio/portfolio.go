// Package portfolio aggregates priced positions. It consumes the pricing
// package's results and sums them; nothing in the core depends back on it.
//
// Money totals are accumulated as decimals so that large books do not lose
// cents to floating-point summation order.
package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/pricing"
)

// Position is an immutable holding: an instrument and a signed quantity
// (positive long, negative short).
type Position struct {
	Instrument pricing.Instrument
	Quantity   float64
}

// PositionError identifies which position failed to price. Failures never
// corrupt or silently drop the other positions: every failing position
// contributes its own PositionError to the combined error.
type PositionError struct {
	Index int
	Err   error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("portfolio: position %d: %v", e.Index, e.Err)
}

func (e *PositionError) Unwrap() error { return e.Err }

// NPV sums price × quantity over the portfolio. On a non-nil error the
// returned total covers only the positions that priced; the error names
// every position that did not.
func NPV(positions []Position, crv curve.DiscountCurve, valuationDate time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	var errs error
	for i, pos := range positions {
		price, err := pricing.PriceInstrument(pos.Instrument, crv, valuationDate)
		if err != nil {
			errs = multierr.Append(errs, &PositionError{Index: i, Err: err})
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(pos.Quantity)))
	}
	return total, errs
}

// RiskReport aggregates risk over a book.
type RiskReport struct {
	// MarketValue is the total NPV.
	MarketValue decimal.Decimal
	// TotalDV01 is the book's price change per one basis point rate rise.
	TotalDV01 decimal.Decimal
	// Duration is the value-weighted average modified duration.
	Duration float64
}

// Risk prices every position under ±bump parallel shifts and aggregates
// market value, DV01 and value-weighted duration. Per-position failures are
// combined with multierr, one PositionError each.
func Risk(positions []Position, crv curve.DiscountCurve, valuationDate time.Time, bump float64) (RiskReport, error) {
	var (
		report      RiskReport
		weightedDur decimal.Decimal
		errs        error
	)
	report.MarketValue = decimal.Zero
	report.TotalDV01 = decimal.Zero

	for i, pos := range positions {
		metrics, err := pricing.CalculateRiskMetrics(pos.Instrument, crv, valuationDate, bump)
		if err != nil {
			errs = multierr.Append(errs, &PositionError{Index: i, Err: err})
			continue
		}

		qty := decimal.NewFromFloat(pos.Quantity)
		value := decimal.NewFromFloat(metrics.Price).Mul(qty)

		report.MarketValue = report.MarketValue.Add(value)
		report.TotalDV01 = report.TotalDV01.Add(decimal.NewFromFloat(metrics.DV01).Mul(qty))
		weightedDur = weightedDur.Add(decimal.NewFromFloat(metrics.Duration).Mul(value))
	}

	if !report.MarketValue.IsZero() {
		report.Duration = weightedDur.Div(report.MarketValue).InexactFloat64()
	}
	return report, errs
}

// ExposureByMaturityYear buckets NPV by the instruments' maturity year.
func ExposureByMaturityYear(positions []Position, crv curve.DiscountCurve, valuationDate time.Time) (map[int]decimal.Decimal, error) {
	exposure := make(map[int]decimal.Decimal)
	var errs error
	for i, pos := range positions {
		price, err := pricing.PriceInstrument(pos.Instrument, crv, valuationDate)
		if err != nil {
			errs = multierr.Append(errs, &PositionError{Index: i, Err: err})
			continue
		}
		year := pos.Instrument.Maturity().Year()
		value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(pos.Quantity))
		if prev, ok := exposure[year]; ok {
			exposure[year] = prev.Add(value)
		} else {
			exposure[year] = value
		}
	}
	return exposure, errs
}
