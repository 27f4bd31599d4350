package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/capgrowth/plot"
	"github.com/google/subcommands"
)

type chartCmd struct {
	purchaseFlags
	output        string
	width, height int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draws the capital growth chart" }
func (*chartCmd) Usage() string {
	return `cgr chart -o <file.png|file.svg> [-index real|nominal] [-price <price>] [-purchased <date>]

Draws the reconstructed value of a purchase over time, with the purchase
itself marked on the line. The image format is taken from the file extension.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "capital-growth.png", "Output file, .png or .svg.")
	f.IntVar(&c.width, "width", plot.DefaultWidth, "Image width in pixels.")
	f.IntVar(&c.height, "height", plot.DefaultHeight, "Image height in pixels.")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := plot.ParseFormat(filepath.Ext(c.output))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := plot.Render(out, g, format, plot.Options{Width: c.width, Height: c.height, Currency: cfg.Currency}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.output)
	return subcommands.ExitSuccess
}
