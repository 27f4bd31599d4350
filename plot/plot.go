// Package plot draws the capital growth chart.
package plot

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/etnz/capgrowth"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat returns the format for a name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported chart format %q, want png or svg", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options are the chart settings. Zero values use the defaults.
type Options struct {
	Width, Height int
	Currency      string // format the price axis, empty for plain numbers
}

const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

var (
	lineColor   = drawing.ColorFromHex("1f77b4")
	markerColor = drawing.ColorFromHex("d62728")
)

// Chart returns the chart of g: the reconstructed value over time and the
// purchase marker.
func Chart(g *capgrowth.Growth, opts Options) chart.Chart {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	line := chart.TimeSeries{
		Name:  "House Price",
		Style: chart.Style{StrokeColor: lineColor, StrokeWidth: 2},
	}
	for _, p := range g.Series() {
		line.XValues = append(line.XValues, p.Date.Time())
		line.YValues = append(line.YValues, p.Value)
	}

	m := g.Marker()
	marker := chart.AnnotationSeries{
		Name: "Purchase",
		Style: chart.Style{
			StrokeColor: markerColor,
			FillColor:   drawing.ColorWhite,
			FontColor:   markerColor,
		},
		Annotations: []chart.Value2{{
			XValue: chart.TimeToFloat64(m.Date.Time()),
			YValue: m.Value,
			Label:  fmt.Sprintf("Purchase %s", m.Date),
		}},
	}

	c := chart.Chart{
		Title:  "Capital Growth",
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006"),
		},
		YAxis: chart.YAxis{
			Name:           "Price",
			ValueFormatter: priceFormatter(opts.Currency),
			Range:          flatRange(append(line.YValues, m.Value)),
		},
		Series: []chart.Series{line, marker},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return c
}

// flatRange returns a padded y range when all values are equal, nil
// otherwise. go-chart cannot derive ticks from a zero delta.
func flatRange(values []float64) chart.Range {
	lo, hi := slices.Min(values), slices.Max(values)
	if hi-lo > 1e-9*math.Max(math.Abs(hi), 1) {
		return nil
	}
	pad := math.Abs(hi) / 10
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func priceFormatter(currency string) chart.ValueFormatter {
	return func(v any) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		if currency == "" {
			return fmt.Sprintf("%.0f", f)
		}
		s := capgrowth.M(f, currency).String()
		// Cents are noise on an axis.
		if i := strings.LastIndexAny(s, ".,"); i >= 0 && len(s)-i == 3 {
			s = s[:i]
		}
		return s
	}
}

// Render writes the chart of g in format f.
func Render(w io.Writer, g *capgrowth.Growth, f Format, opts Options) error {
	c := Chart(g, opts)
	if err := c.Render(f.provider(), w); err != nil {
		return fmt.Errorf("cannot render %s chart: %w", f, err)
	}
	return nil
}
