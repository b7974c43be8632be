package pricing_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quantive/filib/bond"
	"github.com/quantive/filib/calendar"
	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/pricing"
	"github.com/quantive/filib/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parBond is a 3-year 5% annual bond whose payment dates all land on
// business days, so under 30/360 every coupon is exactly 5 and every
// discounting period is a whole year.
func parBond() bond.FixedRateBond {
	return bond.FixedRateBond{
		FaceValue:    100,
		CouponRate:   0.05,
		StartDate:    date(2025, 6, 2),
		MaturityDate: date(2028, 6, 2),
		FreqMonths:   12,
		DayCount:     utils.Thirty360,
		Calendar:     calendar.New(),
		Roll:         calendar.ModifiedFollowing,
	}
}

func TestPriceInstrument_ParBond(t *testing.T) {
	t.Parallel()

	b := parBond()

	// Coupon equal to the flat annually compounded curve rate prices the
	// bond at par on its issue date.
	crv := curve.NewFlat(b.StartDate, 0.05, 1, utils.Thirty360)
	pv, err := pricing.PriceInstrument(b, crv, b.StartDate)
	if err != nil {
		t.Fatalf("PriceInstrument error: %v", err)
	}
	if math.Abs(pv-100.0) > 1e-9 {
		t.Fatalf("par bond price: got %.9f, want 100", pv)
	}
}

func TestPriceInstrument_MonotonicInRate(t *testing.T) {
	t.Parallel()

	b := parBond()
	var prev float64
	for i, rate := range []float64{0.03, 0.04, 0.05, 0.06, 0.07} {
		crv := curve.NewFlat(b.StartDate, rate, 0, utils.Act365)
		pv, err := pricing.PriceInstrument(b, crv, b.StartDate)
		if err != nil {
			t.Fatalf("PriceInstrument error: %v", err)
		}
		if i > 0 && pv >= prev {
			t.Fatalf("price did not fall as the rate rose: %.9f >= %.9f at %.0f%%", pv, prev, rate*100)
		}
		prev = pv
	}
}

func TestPriceInstrument_MaturedIsZero(t *testing.T) {
	t.Parallel()

	b := parBond()
	crv := curve.NewFlat(b.StartDate, 0.05, 0, utils.Act365)

	// On the maturity date and after it nothing remains to price: the
	// value is exactly zero, not an error.
	for _, vd := range []time.Time{b.MaturityDate, date(2030, 1, 1)} {
		pv, err := pricing.PriceInstrument(b, crv, vd)
		if err != nil {
			t.Fatalf("PriceInstrument at %s: %v", vd.Format("2006-01-02"), err)
		}
		if pv != 0 {
			t.Fatalf("matured bond price at %s: got %g, want exactly 0", vd.Format("2006-01-02"), pv)
		}
	}
}

func TestPriceInstrument_NilArguments(t *testing.T) {
	t.Parallel()

	b := parBond()
	crv := curve.NewFlat(b.StartDate, 0.05, 0, utils.Act365)

	if _, err := pricing.PriceInstrument(nil, crv, b.StartDate); !errors.Is(err, pricing.ErrNilInstrument) {
		t.Fatalf("nil instrument: got %v", err)
	}
	if _, err := pricing.PriceInstrument(b, nil, b.StartDate); !errors.Is(err, curve.ErrNilCurve) {
		t.Fatalf("nil curve: got %v", err)
	}
}

// unitCurve discounts nothing: DF is 1 everywhere. It stands in for a market
// curve when a test only cares about flow selection.
type unitCurve struct{ ref time.Time }

func (c unitCurve) DF(time.Time) float64     { return 1 }
func (c unitCurve) ReferenceDate() time.Time { return c.ref }

func TestPriceInstrument_MockCurve(t *testing.T) {
	t.Parallel()

	b := parBond()
	pv, err := pricing.PriceInstrument(b, unitCurve{ref: b.StartDate}, b.StartDate)
	if err != nil {
		t.Fatalf("PriceInstrument error: %v", err)
	}
	// Undiscounted: three 5-coupons plus principal.
	if math.Abs(pv-115.0) > 1e-12 {
		t.Fatalf("undiscounted sum: got %.12f, want 115", pv)
	}
}

func TestCleanPrice(t *testing.T) {
	t.Parallel()

	b := parBond()
	crv := curve.NewFlat(b.StartDate, 0.05, 1, utils.Thirty360)
	vd := date(2025, 12, 2) // half a coupon period after issue

	dirty, err := pricing.PriceInstrument(b, crv, vd)
	if err != nil {
		t.Fatalf("PriceInstrument error: %v", err)
	}
	accrued, err := b.AccruedInterest(vd)
	if err != nil {
		t.Fatalf("AccruedInterest error: %v", err)
	}
	if math.Abs(accrued-2.5) > 1e-12 {
		t.Fatalf("accrued at half period: got %.12f, want 2.5", accrued)
	}

	clean, err := pricing.CleanPrice(b, crv, vd)
	if err != nil {
		t.Fatalf("CleanPrice error: %v", err)
	}
	if math.Abs(clean-(dirty-accrued)) > 1e-12 {
		t.Fatalf("clean price: got %.12f, want %.12f", clean, dirty-accrued)
	}
}

func TestImpliedYield_RoundTrip(t *testing.T) {
	t.Parallel()

	b := parBond()
	vd := b.StartDate

	for _, y := range []float64{0.01, 0.05, 0.09} {
		crv := curve.NewFlat(vd, y, 0, b.DayCount)
		price, err := pricing.PriceInstrument(b, crv, vd)
		if err != nil {
			t.Fatalf("PriceInstrument error: %v", err)
		}

		got, err := pricing.ImpliedYield(b, price, vd, 0)
		if err != nil {
			t.Fatalf("ImpliedYield error at y=%g: %v", y, err)
		}
		if math.Abs(got-y) > 1e-6 {
			t.Fatalf("implied yield: got %.9f, want %.9f", got, y)
		}
	}
}

func TestImpliedYield_Matured(t *testing.T) {
	t.Parallel()

	b := parBond()

	_, err := pricing.ImpliedYield(b, 100, b.MaturityDate, 0)
	var vdErr *pricing.ValuationDateError
	if !errors.As(err, &vdErr) {
		t.Fatalf("expected *ValuationDateError, got %v", err)
	}
}
