package capgrowth

import (
	"fmt"
	"slices"
	"sort"

	"github.com/etnz/capgrowth/date"
)

// Anchor is the purchase: the date and the nominal price paid.
type Anchor struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// Point is a reconstructed value at a date.
type Point struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// ReconstructedSeries is what the anchor value would have been worth at every
// date of an index series.
type ReconstructedSeries []Point

// Segment tells on which side of the anchor date a record lies.
type Segment int

const (
	Backward Segment = iota // on or before the anchor date
	Forward                 // strictly after the anchor date
)

func (s Segment) String() string {
	if s == Forward {
		return "forward"
	}
	return "backward"
}

func (s Segment) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Row is the full detail of one reconstructed record.
type Row struct {
	Date    date.Date `json:"date"`
	Index   float64   `json:"index"`
	Change  float64   `json:"change"` // fraction, see Reconstruct for its direction
	Value   float64   `json:"value"`
	Segment Segment   `json:"segment"`
}

// Growth is the capital growth of a purchase against an index.
type Growth struct {
	Type   IndexType `json:"type"`
	Anchor Anchor    `json:"anchor"`
	Rows   []Row     `json:"rows"`
	CAGR   float64   `json:"cagr"`
}

// Analyze reconstructs the value of the anchor over the whole index and its CAGR.
//
// It either fully succeeds or returns one of ErrEmptySegment, ErrDivision or
// ErrDomain (wrapped).
func Analyze(index IndexSeries, anchor Anchor) (*Growth, error) {
	rows, err := reconstruct(index, anchor)
	if err != nil {
		return nil, err
	}
	g := &Growth{Type: index.Type(), Anchor: anchor, Rows: rows}
	if g.CAGR, err = CAGR(g.Series()); err != nil {
		return nil, err
	}
	return g, nil
}

// Reconstruct returns the value of the anchor at every date of index.
//
// The latest record on or before the anchor date is worth exactly the anchor
// value. Earlier records are compounded backward with their trailing-future
// percent change, later records are compounded forward with their change
// versus the preceding record. The returned series has one point per index
// record, at the same dates.
func Reconstruct(index IndexSeries, anchor Anchor) (ReconstructedSeries, error) {
	rows, err := reconstruct(index, anchor)
	if err != nil {
		return nil, err
	}
	return series(rows), nil
}

func reconstruct(index IndexSeries, anchor Anchor) ([]Row, error) {
	if index.Len() == 0 {
		return nil, fmt.Errorf("empty %s index: %w", index.Type(), ErrEmptySegment)
	}
	backward, forward := split(index.records, anchor.Date)
	if len(backward) == 0 {
		return nil, fmt.Errorf("no %s index record on or before %s, index starts on %s: %w", index.Type(), anchor.Date, index.Range().From, ErrEmptySegment)
	}
	if len(forward) == 0 {
		return nil, fmt.Errorf("no %s index record after %s, index ends on %s: %w", index.Type(), anchor.Date, index.Range().To, ErrEmptySegment)
	}
	last := len(backward) - 1

	back, err := trailingFutureChanges(backward, forward[0])
	if err != nil {
		return nil, err
	}
	fwd, err := precedingChanges(&backward[last], forward)
	if err != nil {
		return nil, err
	}

	// The anchor record is the seed, the bridge (back[last]) links it to forward[0].
	steps := slices.Clone(back[:last])
	slices.Reverse(steps)
	backValues := append([]float64{anchor.Value}, compound(anchor.Value, steps)...)
	slices.Reverse(backValues)
	fwdValues := compound(anchor.Value, fwd)

	rows := make([]Row, 0, index.Len())
	for i, r := range backward {
		rows = append(rows, Row{Date: r.Date, Index: r.Value, Change: back[i], Value: backValues[i], Segment: Backward})
	}
	for i, r := range forward {
		rows = append(rows, Row{Date: r.Date, Index: r.Value, Change: fwd[i], Value: fwdValues[i], Segment: Forward})
	}
	return rows, nil
}

// split partitions records around on: backward holds dates <= on, forward dates > on.
func split(records []Record, on date.Date) (backward, forward []Record) {
	i := sort.Search(len(records), func(i int) bool { return records[i].Date.After(on) })
	return records[:i], records[i:]
}

// trailingFutureChanges returns the change of each backward record versus the
// chronologically following one, (value - later) / later.
//
// The last backward record is measured against next, the first forward
// record: that value is the bridge between both segments.
func trailingFutureChanges(backward []Record, next Record) ([]float64, error) {
	changes := make([]float64, len(backward))
	for i, r := range backward {
		later := next
		if i+1 < len(backward) {
			later = backward[i+1]
		}
		c, err := change(r.Value, later)
		if err != nil {
			return nil, err
		}
		changes[i] = c
	}
	return changes, nil
}

// precedingChanges returns the change of each forward record versus the one
// before it, (value - earlier) / earlier.
//
// The first forward record is measured against prev. When there is no prev
// its change is 0.
func precedingChanges(prev *Record, forward []Record) ([]float64, error) {
	changes := make([]float64, len(forward))
	for i, r := range forward {
		var earlier Record
		switch {
		case i > 0:
			earlier = forward[i-1]
		case prev != nil:
			earlier = *prev
		default:
			changes[i] = 0
			continue
		}
		c, err := change(r.Value, earlier)
		if err != nil {
			return nil, err
		}
		changes[i] = c
	}
	return changes, nil
}

// change returns the fractional change of value versus base.
func change(value float64, base Record) (float64, error) {
	if base.Value == 0 {
		return 0, fmt.Errorf("percentage change against the index on %s: %w", base.Date, ErrDivision)
	}
	return (value - base.Value) / base.Value, nil
}

// compound applies successive changes starting from seed. The seed itself is
// not part of the result.
func compound(seed float64, changes []float64) []float64 {
	res := make([]float64, len(changes))
	v := seed
	for i, c := range changes {
		v *= 1 + c
		res[i] = v
	}
	return res
}

func series(rows []Row) ReconstructedSeries {
	s := make(ReconstructedSeries, len(rows))
	for i, r := range rows {
		s[i] = Point{Date: r.Date, Value: r.Value}
	}
	return s
}

// Series returns the reconstructed values.
func (g *Growth) Series() ReconstructedSeries { return series(g.Rows) }

// Marker returns the purchase as a point, to be plotted over the series.
func (g *Growth) Marker() Point { return Point(g.Anchor) }

// First returns the earliest reconstructed point.
func (g *Growth) First() Point { return Point{Date: g.Rows[0].Date, Value: g.Rows[0].Value} }

// Last returns the latest reconstructed point.
func (g *Growth) Last() Point {
	r := g.Rows[len(g.Rows)-1]
	return Point{Date: r.Date, Value: r.Value}
}

// Range returns the dates covered by the reconstruction.
func (g *Growth) Range() date.Range { return date.Range{From: g.First().Date, To: g.Last().Date} }

// AnchorRow returns the index of the row carrying the anchor value.
func (g *Growth) AnchorRow() int {
	for i, r := range g.Rows {
		if r.Segment == Forward {
			return i - 1
		}
	}
	return len(g.Rows) - 1
}

// Bridge returns the change linking the anchor record to the first record after it.
func (g *Growth) Bridge() float64 { return g.Rows[g.AnchorRow()].Change }

// CAGRPercent returns the CAGR in percent.
func (g *Growth) CAGRPercent() Percent { return Percent(100 * g.CAGR) }
