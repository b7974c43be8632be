package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/quantive/filib/marketdata"
	"github.com/quantive/filib/portfolio"
	"github.com/quantive/filib/pricing"
	"github.com/quantive/filib/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "price":
		return priceCmd(args[1:], stdout, stderr)
	case "risk":
		return riskCmd(args[1:], stdout, stderr)
	case "yield":
		return yieldCmd(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bondcalc <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  price  Portfolio NPV off a discount curve")
	fmt.Fprintln(w, "  risk   Portfolio duration / convexity / DV01")
	fmt.Fprintln(w, "  yield  Implied flat yield of the first position")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `bondcalc <command> -h` for command-specific help.")
}

type commonFlags struct {
	curvePath     string
	portfolioPath string
	valuationDate string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.curvePath, "curve", "", "curve YAML file")
	fs.StringVar(&c.portfolioPath, "portfolio", "", "portfolio YAML file")
	fs.StringVar(&c.valuationDate, "date", "", "valuation date (YYYY-MM-DD)")
}

func (c *commonFlags) load(stderr io.Writer) ([]portfolio.Position, time.Time, bool) {
	if c.portfolioPath == "" || c.valuationDate == "" {
		fmt.Fprintln(stderr, "bondcalc: -portfolio and -date are required")
		return nil, time.Time{}, false
	}
	positions, err := marketdata.LoadPortfolioFile(c.portfolioPath)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return nil, time.Time{}, false
	}
	vd, err := utils.ParseDate(c.valuationDate)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: invalid -date: %v\n", err)
		return nil, time.Time{}, false
	}
	return positions, vd, true
}

func priceCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	positions, vd, ok := common.load(stderr)
	if !ok {
		return 2
	}
	crv, err := marketdata.LoadCurveFile(common.curvePath)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return 1
	}

	npv, err := portfolio.NPV(positions, crv, vd)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "NPV: %s\n", npv.StringFixed(4))
	return 0
}

func riskCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("risk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	bump := fs.Float64("bump", 0, "curve bump size (decimal; default 1bp)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	positions, vd, ok := common.load(stderr)
	if !ok {
		return 2
	}
	crv, err := marketdata.LoadCurveFile(common.curvePath)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return 1
	}

	report, err := portfolio.Risk(positions, crv, vd, *bump)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Market value: %s\n", report.MarketValue.StringFixed(4))
	fmt.Fprintf(stdout, "Total DV01:   %s\n", report.TotalDV01.StringFixed(6))
	fmt.Fprintf(stdout, "Duration:     %.6f\n", report.Duration)
	return 0
}

func yieldCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("yield", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	price := fs.Float64("price", 0, "market dirty price of the first position's bond")
	freq := fs.Int("freq", 0, "compounding frequency per year (0 = continuous)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	positions, vd, ok := common.load(stderr)
	if !ok {
		return 2
	}
	if len(positions) == 0 {
		fmt.Fprintln(stderr, "bondcalc: portfolio file has no positions")
		return 1
	}

	y, err := pricing.ImpliedYield(positions[0].Instrument, *price, vd, *freq)
	if err != nil {
		fmt.Fprintf(stderr, "bondcalc: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Implied yield: %.6f%%\n", y*100)
	return 0
}
