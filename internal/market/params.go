// Package market validates market parameters for generated configurations.
package market

import (
	"fmt"
	"time"

	"github.com/marketsim/abidesgen/internal/errors"
)

// Defaults applied when neither the user nor a template supplies a value.
const (
	DefaultSymbol       = "JPM"
	DefaultDate         = "2019-06-28"
	DefaultOpen         = "09:30:00"
	DefaultClose        = "16:00:00"
	DefaultStartingCash = 10_000_000 // cents
)

// Accepted literal formats.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04:05"
)

// Params holds the market parameters for one generation run.
// Seed is only meaningful when SeedSet is true; otherwise the CLI layer
// auto-generates one before rendering.
type Params struct {
	Symbol       string
	Date         string // DateFormat
	Open         string // TimeFormat
	Close        string // TimeFormat
	StartingCash int64  // smallest currency unit (cents)
	Seed         int64
	SeedSet      bool
	Gym          bool
}

// Validate checks all market parameters, including the open/close cross-field
// check, and returns advisory warnings for unusual but valid values.
// now anchors the accepted date range.
// Returns E_INVALID_PARAMS on the first fatal problem.
func (p Params) Validate(now time.Time) ([]string, error) {
	if p.Symbol == "" {
		return nil, errors.New(errors.EInvalidParams, "symbol must be non-empty")
	}

	date, err := time.Parse(DateFormat, p.Date)
	if err != nil {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", p.Date))
	}
	if date.Year() < 1990 || date.Year() > now.Year()+1 {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("market date should be between 1990 and %d: %s", now.Year()+1, p.Date))
	}

	open, err := time.Parse(TimeFormat, p.Open)
	if err != nil {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("invalid market open time %q (expected: HH:MM:SS)", p.Open))
	}
	close, err := time.Parse(TimeFormat, p.Close)
	if err != nil {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("invalid market close time %q (expected: HH:MM:SS)", p.Close))
	}
	if !open.Before(close) {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("market open (%s) must be before market close (%s)", p.Open, p.Close))
	}

	if p.StartingCash <= 0 {
		return nil, errors.New(errors.EInvalidParams,
			fmt.Sprintf("starting cash must be positive (cents), got: %d", p.StartingCash))
	}

	var warnings []string
	if h := open.Hour(); h < 4 || h > 22 {
		warnings = append(warnings,
			fmt.Sprintf("unusual market open time: %s (typical range: 04:00-22:00)", p.Open))
	}
	if h := close.Hour(); h < 4 || h > 22 {
		warnings = append(warnings,
			fmt.Sprintf("unusual market close time: %s (typical range: 04:00-22:00)", p.Close))
	}
	if p.StartingCash < 100_000 {
		warnings = append(warnings,
			fmt.Sprintf("low starting cash: $%.2f per agent", float64(p.StartingCash)/100))
	} else if p.StartingCash > 10_000_000_000 {
		warnings = append(warnings,
			fmt.Sprintf("very high starting cash: $%.0f per agent", float64(p.StartingCash)/100))
	}

	return warnings, nil
}

// AutoSeed derives a random seed from the wall clock: microseconds modulo
// 2^32-1, keeping the value inside numpy's seed range. Callers pass the result
// back in through Params so the render pipeline stays deterministic.
func AutoSeed(now time.Time) int64 {
	return now.UnixMicro() % (1<<32 - 1)
}
