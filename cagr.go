package capgrowth

import (
	"fmt"
	"math"

	"github.com/etnz/capgrowth/date"
)

// CAGR returns the compound annual growth rate between the first and the last
// point, as a fraction (0.05 is 5%).
//
// The number of years is the difference of calendar years, not the elapsed
// time: a series from 2000-12-01 to 2001-01-01 spans one year. Points must be
// in chronological order.
func CAGR(points []Point) (float64, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("cagr needs at least 2 points, got %d: %w", len(points), ErrDivision)
	}
	first, last := points[0], points[len(points)-1]
	years := date.Range{From: first.Date, To: last.Date}.Years()
	if years == 0 {
		return 0, fmt.Errorf("cagr from %s to %s spans no calendar year: %w", first.Date, last.Date, ErrDivision)
	}
	if first.Value == 0 {
		return 0, fmt.Errorf("cagr from a zero value on %s: %w", first.Date, ErrDivision)
	}
	ratio := last.Value / first.Value
	if ratio < 0 {
		return 0, fmt.Errorf("cagr of a negative growth ratio %v: %w", ratio, ErrDomain)
	}
	return math.Pow(ratio, 1/float64(years)) - 1, nil
}
