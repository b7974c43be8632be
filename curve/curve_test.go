package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/numerics"
	"github.com/quantive/filib/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var refDate = date(2025, 1, 1)

func TestNewFlat_Continuous(t *testing.T) {
	t.Parallel()

	crv := curve.NewFlat(refDate, 0.05, 0, utils.Act365)

	if got := crv.DF(refDate); got != 1.0 {
		t.Fatalf("DF at reference date: got %.12f, want 1", got)
	}

	oneYear := date(2026, 1, 1)
	want := math.Exp(-0.05)
	if got := crv.DF(oneYear); math.Abs(got-want) > 1e-15 {
		t.Fatalf("DF(1y): got %.15f, want %.15f", got, want)
	}
}

func TestNewFlat_DiscreteCompounding(t *testing.T) {
	t.Parallel()

	crv := curve.NewFlat(refDate, 0.05, 1, utils.Act365)

	want := 1.0 / 1.05
	if got := crv.DF(date(2026, 1, 1)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DF(1y) annual compounding: got %.15f, want %.15f", got, want)
	}
}

func TestZeroRate_RecoverFlatRate(t *testing.T) {
	t.Parallel()

	target := date(2026, 1, 1)

	cont := curve.NewFlat(refDate, 0.05, 0, utils.Act365)
	got, err := curve.ZeroRate(cont, target, utils.Act365, 0)
	if err != nil {
		t.Fatalf("ZeroRate error: %v", err)
	}
	if math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("continuous zero rate: got %.12f, want 0.05", got)
	}

	annual := curve.NewFlat(refDate, 0.05, 1, utils.Act365)
	got, err = curve.ZeroRate(annual, target, utils.Act365, 1)
	if err != nil {
		t.Fatalf("ZeroRate error: %v", err)
	}
	if math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("annual zero rate: got %.12f, want 0.05", got)
	}

	// On the reference date the rate is zero by convention.
	got, _ = curve.ZeroRate(cont, refDate, utils.Act365, 0)
	if got != 0 {
		t.Fatalf("zero rate at reference date: got %g", got)
	}
}

func TestForwardRate(t *testing.T) {
	t.Parallel()

	crv := curve.NewFlat(refDate, 0.05, 0, utils.Act365)
	start := date(2026, 1, 1)
	end := date(2027, 1, 1)

	// Continuous forward on a flat curve equals the flat rate.
	got, err := curve.ForwardRate(crv, start, end, utils.Act365, 0)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("continuous forward: got %.12f, want 0.05", got)
	}

	// Simple forward is (DF(start)/DF(end) − 1)/τ.
	got, err = curve.ForwardRate(crv, start, end, utils.Act365, 1)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	want := math.Exp(0.05) - 1
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("simple forward: got %.12f, want %.12f", got, want)
	}

	// Empty period.
	got, _ = curve.ForwardRate(crv, start, start, utils.Act365, 0)
	if got != 0 {
		t.Fatalf("forward over empty period: got %g", got)
	}
}

func TestNewFromDiscountFactors_Pillars(t *testing.T) {
	t.Parallel()

	pillars := []curve.Pillar{
		{Date: date(2026, 1, 1), DF: 0.95},
		{Date: date(2027, 1, 1), DF: 0.90},
	}
	crv, err := curve.NewFromDiscountFactors(refDate, pillars, curve.LogLinear, utils.Act365)
	if err != nil {
		t.Fatalf("NewFromDiscountFactors error: %v", err)
	}

	if got := crv.DF(refDate); got != 1.0 {
		t.Fatalf("DF at reference date: got %.12f, want 1", got)
	}
	if got := crv.DF(date(2026, 1, 1)); math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("DF at first pillar: got %.15f, want 0.95", got)
	}
	if got := crv.DF(date(2027, 1, 1)); math.Abs(got-0.90) > 1e-12 {
		t.Fatalf("DF at second pillar: got %.15f, want 0.90", got)
	}

	// Between pillars: log-linear in time.
	mid := date(2026, 7, 2)
	tm := utils.YearFraction(refDate, mid, utils.Act365)
	want := math.Exp(math.Log(0.95) + (tm-1.0)*(math.Log(0.90)-math.Log(0.95)))
	if got := crv.DF(mid); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DF between pillars: got %.15f, want %.15f", got, want)
	}

	// Between the reference date and the first pillar the implicit
	// (t=0, DF=1) node makes discounting continuous: DF(t) = 0.95^t.
	early := date(2025, 7, 2)
	te := utils.YearFraction(refDate, early, utils.Act365)
	want = math.Pow(0.95, te)
	if got := crv.DF(early); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DF before first pillar: got %.15f, want %.15f", got, want)
	}

	// Beyond the last pillar: flat extrapolation of the factor.
	if got := crv.DF(date(2030, 1, 1)); math.Abs(got-0.90) > 1e-12 {
		t.Fatalf("DF beyond last pillar: got %.15f, want flat 0.90", got)
	}
}

func TestNewFromDiscountFactors_SortsPillars(t *testing.T) {
	t.Parallel()

	pillars := []curve.Pillar{
		{Date: date(2027, 1, 1), DF: 0.90},
		{Date: date(2026, 1, 1), DF: 0.95},
	}
	crv, err := curve.NewFromDiscountFactors(refDate, pillars, curve.Linear, utils.Act365)
	if err != nil {
		t.Fatalf("NewFromDiscountFactors error: %v", err)
	}
	if got := crv.DF(date(2026, 1, 1)); math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("DF at first pillar after sort: got %.15f", got)
	}
}

func TestNewFromDiscountFactors_Errors(t *testing.T) {
	t.Parallel()

	var domainErr *numerics.DomainError

	_, err := curve.NewFromDiscountFactors(refDate, []curve.Pillar{{Date: date(2026, 1, 1), DF: 0.95}}, curve.LogLinear, utils.Act365)
	if !errors.As(err, &domainErr) {
		t.Fatalf("single pillar: expected *DomainError, got %v", err)
	}

	dup := []curve.Pillar{
		{Date: date(2026, 1, 1), DF: 0.95},
		{Date: date(2026, 1, 1), DF: 0.94},
	}
	_, err = curve.NewFromDiscountFactors(refDate, dup, curve.LogLinear, utils.Act365)
	if !errors.As(err, &domainErr) {
		t.Fatalf("duplicate pillar dates: expected *DomainError, got %v", err)
	}

	bad := []curve.Pillar{
		{Date: date(2026, 1, 1), DF: -0.95},
		{Date: date(2027, 1, 1), DF: 0.90},
	}
	_, err = curve.NewFromDiscountFactors(refDate, bad, curve.LogLinear, utils.Act365)
	if !errors.As(err, &domainErr) {
		t.Fatalf("negative factor: expected *DomainError, got %v", err)
	}

	_, err = curve.NewFromDiscountFactors(refDate, dup, curve.Interpolation("cubic"), utils.Act365)
	if err == nil {
		t.Fatal("expected error for unknown interpolation method")
	}
}

func TestShift(t *testing.T) {
	t.Parallel()

	base := curve.NewFlat(refDate, 0.05, 0, utils.Act365)
	target := date(2027, 1, 1)
	delta := 0.01

	up := curve.Shift(base, delta)

	// Shifted zero rate moves by exactly delta.
	baseZero, _ := curve.ZeroRate(base, target, utils.Act365, 0)
	upZero, _ := curve.ZeroRate(up, target, utils.Act365, 0)
	if math.Abs(upZero-baseZero-delta) > 1e-12 {
		t.Fatalf("shifted zero rate: got %.12f, want %.12f", upZero, baseZero+delta)
	}

	// The base curve is untouched.
	if got := base.DF(target); math.Abs(got-math.Exp(-0.05*2)) > 1e-12 {
		t.Fatalf("base curve mutated by Shift: DF=%.15f", got)
	}

	// Shifts compose: down then up restores the base.
	roundTrip := curve.Shift(up, -delta)
	if got, want := roundTrip.DF(target), base.DF(target); math.Abs(got-want) > 1e-12 {
		t.Fatalf("shift round trip: got %.15f, want %.15f", got, want)
	}

	if !up.ReferenceDate().Equal(base.ReferenceDate()) {
		t.Fatal("shifted curve changed the reference date")
	}
}
