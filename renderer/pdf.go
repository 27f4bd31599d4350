package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/capgrowth"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDF writes the growth report as an A4 document. png is the chart image, it
// is skipped when empty.
func PDF(w io.Writer, g *capgrowth.Growth, png []byte, opts Options) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("Housing Price Analysis", true)
	// Core fonts are Latin-1, currency symbols need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "Housing Price Analysis", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(contentWidth, 7, tr(fmt.Sprintf("%s index, %s purchased on %s.", g.Type, opts.money(g.Anchor.Value), g.Anchor.Date)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentWidth, 9, fmt.Sprintf("Compound Annual Growth Rate: %s", g.CAGRPercent()), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(png) > 0 {
		info := pdf.RegisterImageOptionsReader("chart", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		if info != nil {
			h := contentWidth * info.Height() / info.Width()
			pdf.ImageOptions("chart", marginLeft, pdf.GetY(), contentWidth, h, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			pdf.Ln(3)
		}
	}

	first, last := g.First(), g.Last()
	pdf.SetFillColor(245, 247, 250)
	pdf.SetFont("Arial", "", 11)
	for _, line := range [][2]string{
		{"Period", g.Range().String()},
		{fmt.Sprintf("Value on %s", first.Date), opts.money(first.Value)},
		{fmt.Sprintf("Value on %s", last.Date), opts.money(last.Value)},
		{"Bridge", capgrowth.Fraction(g.Bridge()).SignedString()},
	} {
		pdf.CellFormat(contentWidth/2, 7, line[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(contentWidth/2, 7, tr(line[1]), "1", 1, "R", false, 0, "")
	}

	if opts.Raw {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(contentWidth, 10, "Raw Data", "", 1, "L", false, 0, "")
		widths := []float64{30, 30, 30, 55, 35}
		aligns := []string{"L", "R", "R", "R", "L"}
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(50, 50, 50)
		for i, h := range rawHeader {
			pdf.CellFormat(widths[i], 7, h, "1", 0, aligns[i], true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		anchor := g.AnchorRow()
		for i, r := range g.Rows {
			style := ""
			if i == anchor {
				style = "B"
			}
			pdf.SetFont("Arial", style, 10)
			for j, c := range rawCells(r, opts) {
				pdf.CellFormat(widths[j], 6, tr(c), "1", 0, aligns[j], false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("cannot write pdf report: %w", err)
	}
	return nil
}
