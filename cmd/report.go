package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/config"
	"github.com/etnz/capgrowth/plot"
	"github.com/etnz/capgrowth/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	purchaseFlags
	format string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "writes a capital growth report" }
func (*reportCmd) Usage() string {
	return `cgr report [-format md|html|pdf] [-o <file>] [-index real|nominal] [-price <price>] [-purchased <date>] [-raw]

Writes the capital growth analysis as a document: markdown, a standalone
HTML page with the chart, or a PDF. The report is written to stdout unless
-o is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f)
	f.StringVar(&c.format, "format", "md", "Report format: md, html or pdf.")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.format {
	case "md", "html", "pdf":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown report format %q, want md, html or pdf\n", c.format)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	g, err := c.analyze(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", explain(err))
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	if err := c.write(&buf, g, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output == "" {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", c.output)
	return subcommands.ExitSuccess
}

func (c *reportCmd) write(w io.Writer, g *capgrowth.Growth, cfg *config.Config) error {
	opts := renderer.Options{Currency: cfg.Currency, Raw: c.isRaw(cfg)}
	switch c.format {
	case "html":
		var svg bytes.Buffer
		if err := plot.Render(&svg, g, plot.SVG, plot.Options{Currency: cfg.Currency}); err != nil {
			return err
		}
		return renderer.HTML(w, renderer.GrowthMarkdown(g, opts), svg.Bytes())
	case "pdf":
		var png bytes.Buffer
		if err := plot.Render(&png, g, plot.PNG, plot.Options{Currency: cfg.Currency}); err != nil {
			return err
		}
		return renderer.PDF(w, g, png.Bytes(), opts)
	}
	_, err := io.WriteString(w, renderer.GrowthMarkdown(g, opts))
	return err
}
