package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capgrowth"
	md "github.com/nao1215/markdown"
)

// Options holds configuration for rendering a growth report.
type Options struct {
	Currency string // currency of the purchase price, empty for plain numbers
	Raw      bool   // Append the raw data table.
	Untitled bool   // Omit the title, to embed the report in a page.
}

func (o Options) money(v float64) string { return capgrowth.M(v, o.Currency).String() }

// GrowthMarkdown renders the capital growth of a purchase to a markdown string.
func GrowthMarkdown(g *capgrowth.Growth, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if !opts.Untitled {
		doc.H1("Housing Price Analysis")
	}

	first, last := g.First(), g.Last()
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header: []string{
			md.Bold("Compound Annual Growth Rate"),
			md.Bold(g.CAGRPercent().String()),
		},
		Rows: [][]string{
			{"Index", fmt.Sprintf("%s (%d records)", g.Type, len(g.Rows))},
			{"Purchased", g.Anchor.Date.String()},
			{"Purchase Price", opts.money(g.Anchor.Value)},
			{"Period", g.Range().String()},
			{fmt.Sprintf("Value on %s", first.Date), opts.money(first.Value)},
			{fmt.Sprintf("Value on %s", last.Date), opts.money(last.Value)},
			{"Gain since Purchase", capgrowth.M(last.Value, opts.Currency).Sub(capgrowth.M(g.Anchor.Value, opts.Currency)).SignedString()},
			{"Bridge", capgrowth.Fraction(g.Bridge()).SignedString()},
		},
	})

	if opts.Raw {
		doc.H2("Raw Data")
		doc.Table(RawTable(g, opts))
	}
	return doc.String()
}

var rawHeader = []string{"Date", "Index", "Change", "Value", "Segment"}

// RawTable returns one line per reconstructed record.
func RawTable(g *capgrowth.Growth, opts Options) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    rawHeader,
	}
	anchor := g.AnchorRow()
	for i, r := range g.Rows {
		cells := rawCells(r, opts)
		if i == anchor {
			cells[3] = md.Bold(cells[3])
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func rawCells(r capgrowth.Row, opts Options) []string {
	return []string{
		r.Date.String(),
		fmt.Sprintf("%.2f", r.Index),
		capgrowth.Fraction(r.Change).SignedString(),
		opts.money(r.Value),
		r.Segment.String(),
	}
}
