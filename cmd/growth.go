package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/renderer"
	"github.com/google/subcommands"
)

type growthCmd struct {
	purchaseFlags
	json bool
}

func (*growthCmd) Name() string     { return "growth" }
func (*growthCmd) Synopsis() string { return "reconstructs the capital growth of a purchase" }
func (*growthCmd) Usage() string {
	return `cgr growth [-index real|nominal] [-price <price>] [-purchased <date>] [-raw] [-json]

Reconstructs the value of a purchase at every date of the house price index,
compounding the index changes forward and backward from the purchase date,
and prints the compound annual growth rate (CAGR).

See 'cgr topic growth' for the details of the computation.
`
}

func (c *growthCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the analysis as JSON.")
}

func (c *growthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.GrowthMarkdown(g, renderer.Options{Currency: cfg.Currency, Raw: c.isRaw(cfg)}))
	return subcommands.ExitSuccess
}

// explain adds a hint to analysis errors.
func explain(err error) error {
	switch {
	case errors.Is(err, capgrowth.ErrEmptySegment):
		return fmt.Errorf("%w\nthe purchase date must fall inside the index range, with at least one record after it", err)
	case errors.Is(err, capgrowth.ErrDivision):
		return fmt.Errorf("%w\nthe index has a zero value or spans less than a calendar year", err)
	case errors.Is(err, capgrowth.ErrDomain):
		return fmt.Errorf("%w\nthe value went negative, CAGR is undefined", err)
	}
	return err
}
