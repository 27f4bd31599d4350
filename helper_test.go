package capgrowth

import (
	"testing"

	"github.com/etnz/capgrowth/date"
)

// monthly is a helper for test to create an index series with one record per
// month starting on from.
func monthly(t *testing.T, from date.Date, values ...float64) IndexSeries {
	t.Helper()
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{Date: from.AddMonths(i), Value: v}
	}
	s, err := NewIndexSeries(Real, records)
	if err != nil {
		t.Fatalf("NewIndexSeries() failed: %v", err)
	}
	return s
}

// yearly is like monthly with one record per year.
func yearly(t *testing.T, from date.Date, values ...float64) IndexSeries {
	t.Helper()
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{Date: from.AddMonths(12 * i), Value: v}
	}
	s, err := NewIndexSeries(Nominal, records)
	if err != nil {
		t.Fatalf("NewIndexSeries() failed: %v", err)
	}
	return s
}
