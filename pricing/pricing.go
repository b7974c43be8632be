// Package pricing turns instruments and discount curves into present values,
// implied yields and risk sensitivities.
//
// Every function here is a pure computation over immutable inputs. Nothing
// is cached between calls, so independent valuations may run on parallel
// workers with no coordination.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantive/filib/bond"
	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/utils"
)

// ErrNilInstrument is returned when a required instrument argument is nil.
var ErrNilInstrument = errors.New("pricing: nil instrument")

// Instrument is the closed set of priceable products. Adding a product type
// means implementing this interface and the schedule generation behind it,
// not subclassing anything.
type Instrument interface {
	// Cashflows returns the deterministic flow schedule, identical on
	// every call for the same instrument value.
	Cashflows() ([]bond.Cashflow, error)
	// Maturity is the date of the final flow.
	Maturity() time.Time
	// DayCountConvention is the instrument's accrual day count, used when
	// solving for a flat-curve implied yield.
	DayCountConvention() utils.DayCount
	// AccruedInterest is the coupon accrued at the valuation date.
	AccruedInterest(valuationDate time.Time) (float64, error)
}

// ValuationDateError is returned when an operation needs remaining cash
// flows but the instrument has matured on or before the valuation date.
type ValuationDateError struct {
	ValuationDate time.Time
	Maturity      time.Time
}

func (e *ValuationDateError) Error() string {
	return fmt.Sprintf("pricing: valuation date %s is on or after maturity %s",
		e.ValuationDate.Format("2006-01-02"), e.Maturity.Format("2006-01-02"))
}

// PriceInstrument returns the dirty present value: the sum of amount × DF
// over flows paying strictly after the valuation date. Flows on or before
// the valuation date are already paid and excluded. A matured instrument
// validly has zero remaining value, so the result is exactly 0 with no
// error when the valuation date is on or after maturity.
func PriceInstrument(inst Instrument, crv curve.DiscountCurve, valuationDate time.Time) (float64, error) {
	if inst == nil {
		return 0, ErrNilInstrument
	}
	if crv == nil {
		return 0, curve.ErrNilCurve
	}

	flows, err := inst.Cashflows()
	if err != nil {
		return 0, err
	}

	var pv float64
	for _, cf := range flows {
		if cf.Date.After(valuationDate) {
			pv += cf.Amount() * crv.DF(cf.Date)
		}
	}
	return pv, nil
}

// CleanPrice is the dirty present value minus accrued interest.
func CleanPrice(inst Instrument, crv curve.DiscountCurve, valuationDate time.Time) (float64, error) {
	dirty, err := PriceInstrument(inst, crv, valuationDate)
	if err != nil {
		return 0, err
	}
	accrued, err := inst.AccruedInterest(valuationDate)
	if err != nil {
		return 0, err
	}
	return dirty - accrued, nil
}
