package marketdata

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantive/filib/bond"
	"github.com/quantive/filib/calendar"
	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/portfolio"
	"github.com/quantive/filib/utils"
)

// curveDayCount is the time axis used for curve construction, ACT/365F per
// market convention regardless of the instruments being discounted.
const curveDayCount = utils.Act365

// CurveFile is the YAML shape of a discount curve: either pillar discount
// factors plus an interpolation method, or a flat-rate specification.
type CurveFile struct {
	ReferenceDate string        `yaml:"reference_date"`
	Interpolation string        `yaml:"interpolation"`
	Pillars       []PillarEntry `yaml:"pillars"`
	FlatRate      *FlatRateSpec `yaml:"flat_rate"`
}

type PillarEntry struct {
	Date           string  `yaml:"date"`
	DiscountFactor float64 `yaml:"discount_factor"`
}

type FlatRateSpec struct {
	Rate float64 `yaml:"rate"`
	// Frequency is compounding per year; 0 means continuous.
	Frequency int    `yaml:"frequency"`
	DayCount  string `yaml:"day_count"`
}

// LoadCurveFile reads a curve YAML file and constructs the curve.
func LoadCurveFile(path string) (curve.DiscountCurve, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("marketdata: read curve file: %w", err)
	}
	var cf CurveFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("marketdata: parse curve file %s: %w", path, err)
	}
	return cf.Build()
}

// Build constructs the discount curve described by the file.
func (cf CurveFile) Build() (curve.DiscountCurve, error) {
	ref, err := utils.ParseDate(cf.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("marketdata: curve reference_date: %w", err)
	}

	if cf.FlatRate != nil {
		dc, err := parseDayCount(cf.FlatRate.DayCount)
		if err != nil {
			return nil, err
		}
		return curve.NewFlat(ref, cf.FlatRate.Rate, cf.FlatRate.Frequency, dc), nil
	}

	method := curve.Interpolation(cf.Interpolation)
	if cf.Interpolation == "" {
		method = curve.LogLinear
	}
	pillars := make([]curve.Pillar, 0, len(cf.Pillars))
	for _, p := range cf.Pillars {
		d, err := utils.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("marketdata: curve pillar date %q: %w", p.Date, err)
		}
		pillars = append(pillars, curve.Pillar{Date: d, DF: p.DiscountFactor})
	}
	return curve.NewFromDiscountFactors(ref, pillars, method, curveDayCount)
}

// PortfolioFile is the YAML shape of a book of bond positions.
type PortfolioFile struct {
	Positions []PositionEntry `yaml:"positions"`
}

type PositionEntry struct {
	Quantity float64   `yaml:"quantity"`
	Bond     BondEntry `yaml:"bond"`
}

type BondEntry struct {
	FaceValue       float64  `yaml:"face_value"`
	CouponRate      float64  `yaml:"coupon_rate"`
	StartDate       string   `yaml:"start_date"`
	MaturityDate    string   `yaml:"maturity_date"`
	FrequencyMonths int      `yaml:"frequency_months"`
	DayCount        string   `yaml:"day_count"`
	Roll            string   `yaml:"roll"`
	Holidays        []string `yaml:"holidays"`
}

// LoadPortfolioFile reads a portfolio YAML file into positions.
func LoadPortfolioFile(path string) ([]portfolio.Position, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("marketdata: read portfolio file: %w", err)
	}
	var pf PortfolioFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("marketdata: parse portfolio file %s: %w", path, err)
	}

	positions := make([]portfolio.Position, 0, len(pf.Positions))
	for i, entry := range pf.Positions {
		b, err := entry.Bond.Build()
		if err != nil {
			return nil, fmt.Errorf("marketdata: position %d: %w", i, err)
		}
		positions = append(positions, portfolio.Position{Instrument: b, Quantity: entry.Quantity})
	}
	return positions, nil
}

// Build constructs and validates the bond described by the entry.
func (e BondEntry) Build() (bond.FixedRateBond, error) {
	start, err := utils.ParseDate(e.StartDate)
	if err != nil {
		return bond.FixedRateBond{}, fmt.Errorf("start_date: %w", err)
	}
	maturity, err := utils.ParseDate(e.MaturityDate)
	if err != nil {
		return bond.FixedRateBond{}, fmt.Errorf("maturity_date: %w", err)
	}
	dc, err := parseDayCount(e.DayCount)
	if err != nil {
		return bond.FixedRateBond{}, err
	}
	roll, err := parseRoll(e.Roll)
	if err != nil {
		return bond.FixedRateBond{}, err
	}

	holidays := make([]time.Time, 0, len(e.Holidays))
	for _, h := range e.Holidays {
		d, err := utils.ParseDate(h)
		if err != nil {
			return bond.FixedRateBond{}, fmt.Errorf("holiday %q: %w", h, err)
		}
		holidays = append(holidays, d)
	}

	b := bond.FixedRateBond{
		FaceValue:    e.FaceValue,
		CouponRate:   e.CouponRate,
		StartDate:    start,
		MaturityDate: maturity,
		FreqMonths:   e.FrequencyMonths,
		DayCount:     dc,
		Calendar:     calendar.New(holidays...),
		Roll:         roll,
	}
	if err := b.Validate(); err != nil {
		return bond.FixedRateBond{}, err
	}
	return b, nil
}

func parseDayCount(s string) (utils.DayCount, error) {
	switch s {
	case "ACT/365F", "ACT/365", "act/365":
		return utils.Act365, nil
	case "ACT/360", "act/360":
		return utils.Act360, nil
	case "30/360":
		return utils.Thirty360, nil
	case "":
		return utils.Act365, nil
	default:
		return "", fmt.Errorf("marketdata: unknown day count %q", s)
	}
}

func parseRoll(s string) (calendar.Roll, error) {
	switch s {
	case "following", "Following":
		return calendar.Following, nil
	case "modified-following", "ModifiedFollowing", "":
		return calendar.ModifiedFollowing, nil
	case "preceding", "Preceding":
		return calendar.Preceding, nil
	default:
		return "", fmt.Errorf("marketdata: unknown roll convention %q", s)
	}
}
