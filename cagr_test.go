package capgrowth

import (
	"math"
	"testing"

	"github.com/etnz/capgrowth/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR_RoundTrip(t *testing.T) {
	for _, r := range []float64{0.05, -0.02, 0, 0.3} {
		points := make([]Point, 8)
		for i := range points {
			points[i] = Point{Date: date.New(1990+i, 1, 1), Value: 500000 * math.Pow(1+r, float64(i))}
		}
		got, err := CAGR(points)
		require.NoError(t, err)
		assert.InDelta(t, r, got, 1e-9, "rate %v", r)
	}
}

func TestCAGR_CalendarYears(t *testing.T) {
	// One month apart, but on two calendar years: the whole growth counts for one year.
	points := []Point{
		{Date: date.New(2000, 12, 1), Value: 100},
		{Date: date.New(2001, 1, 1), Value: 121},
	}
	got, err := CAGR(points)
	require.NoError(t, err)
	assert.InDelta(t, 0.21, got, 1e-9)

	points = []Point{
		{Date: date.New(2000, 1, 1), Value: 100},
		{Date: date.New(2002, 12, 31), Value: 121},
	}
	got, err = CAGR(points)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, got, 1e-9)
}

func TestCAGR_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		points []Point
		want   error
	}{
		{"no point", nil, ErrDivision},
		{"single point", []Point{{Date: date.New(2000, 1, 1), Value: 1}}, ErrDivision},
		{"same year", []Point{{Date: date.New(2000, 1, 1), Value: 1}, {Date: date.New(2000, 12, 31), Value: 2}}, ErrDivision},
		{"zero start", []Point{{Date: date.New(2000, 1, 1), Value: 0}, {Date: date.New(2001, 1, 1), Value: 2}}, ErrDivision},
		{"negative ratio", []Point{{Date: date.New(2000, 1, 1), Value: 10}, {Date: date.New(2002, 1, 1), Value: -2}}, ErrDomain},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CAGR(tc.points)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
