package capgrowth

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/etnz/capgrowth/date"
)

// IndexType selects which variant of a published index is used.
type IndexType string

const (
	Real    IndexType = "real"
	Nominal IndexType = "nominal"
)

// IndexTypes returns the supported index types, the default one first.
func IndexTypes() []IndexType { return []IndexType{Real, Nominal} }

func (t IndexType) String() string { return string(t) }

// ParseIndexType parses an index type name, case insensitive.
func ParseIndexType(s string) (IndexType, error) {
	t := IndexType(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(IndexTypes(), t) {
		return t, nil
	}
	return "", fmt.Errorf("unknown index type %q, want one of %v", s, IndexTypes())
}

// Record is a single published index value.
type Record struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// IndexSeries is an immutable series of index records, strictly increasing by date.
type IndexSeries struct {
	typ     IndexType
	records []Record
}

// NewIndexSeries validates records and returns them as an IndexSeries sorted by date.
//
// It needs at least two records, with unique dates and finite values.
func NewIndexSeries(typ IndexType, records []Record) (IndexSeries, error) {
	if len(records) < 2 {
		return IndexSeries{}, fmt.Errorf("%s index needs at least 2 records, got %d", typ, len(records))
	}
	rs := slices.Clone(records)
	slices.SortStableFunc(rs, func(a, b Record) int { return a.Date.Compare(b.Date) })
	for i, r := range rs {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return IndexSeries{}, fmt.Errorf("%s index value on %s is not a number: %v", typ, r.Date, r.Value)
		}
		if i > 0 && rs[i-1].Date == r.Date {
			return IndexSeries{}, fmt.Errorf("%s index has duplicate records on %s", typ, r.Date)
		}
	}
	return IndexSeries{typ: typ, records: rs}, nil
}

// Type returns the index variant.
func (s IndexSeries) Type() IndexType { return s.typ }

// Len returns the number of records.
func (s IndexSeries) Len() int { return len(s.records) }

// At returns the i-th record.
func (s IndexSeries) At(i int) Record { return s.records[i] }

// Records returns a copy of the records in chronological order.
func (s IndexSeries) Records() []Record { return slices.Clone(s.records) }

// Range returns the first and last dates of the series.
func (s IndexSeries) Range() date.Range {
	if len(s.records) == 0 {
		return date.Range{}
	}
	return date.Range{From: s.records[0].Date, To: s.records[len(s.records)-1].Date}
}

// All returns an iterator over the date/value pairs in chronological order.
func (s IndexSeries) All() iter.Seq2[date.Date, float64] {
	return func(yield func(date.Date, float64) bool) {
		for _, r := range s.records {
			if !yield(r.Date, r.Value) {
				return
			}
		}
	}
}
