package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/config"
	"github.com/etnz/capgrowth/csvindex"
	"github.com/etnz/capgrowth/date"
	"github.com/etnz/capgrowth/fred"
	"github.com/etnz/capgrowth/insee"
	"github.com/google/subcommands"
)

// fetchCmd is the top-level command to download index series.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "downloads the index series from a provider" }
func (*fetchCmd) Usage() string {
	return `cgr fetch <provider> <options>

Downloads the index series configured for a provider and writes them to the
configured source file, in a layout 'cgr growth' reads back.

Supported providers:
  - fred:  FRED economic data (api.stlouisfed.org). Requires an API key set
           via the ` + fred.EnvAPIKey + ` environment variable.
  - insee: INSEE macro-economic database (bdm.insee.fr).
`
}
func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "fetch")
	commander.Register(&fredFetchCmd{}, "")
	commander.Register(&inseeFetchCmd{}, "")
	return commander.Execute(ctx, args...)
}

// fetchFlags are common to all providers.
type fetchFlags struct {
	output string
	from   string
}

func (c *fetchFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output CSV file. Defaults to the configured source file.")
	f.StringVar(&c.from, "from", "", "Fetch observations since this date (YYYY-MM-DD). Defaults to the whole history.")
}

func (c *fetchFlags) since() (date.Date, error) {
	if c.from == "" {
		return date.Date{}, nil
	}
	return date.Parse(c.from)
}

// fetchAll fetches every index type configured in ids and writes them.
func (c *fetchFlags) fetchAll(cfg *config.Config, ids map[capgrowth.IndexType]string, fetch func(capgrowth.IndexType, string) (capgrowth.IndexSeries, error)) subcommands.ExitStatus {
	var series []capgrowth.IndexSeries
	for _, typ := range capgrowth.IndexTypes() {
		id, ok := ids[typ]
		if !ok {
			continue
		}
		s, err := fetch(typ, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not fetch the %s index %s: %v\n", typ, id, err)
			return subcommands.ExitFailure
		}
		r := s.Range()
		fmt.Fprintf(os.Stderr, "Fetched the %s index %s: %d records from %s to %s\n", typ, id, s.Len(), r.From, r.To)
		series = append(series, s)
	}
	if len(series) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no series configured for this provider\n")
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = cfg.Source.File
	}
	var buf bytes.Buffer
	if err := csvindex.Write(&buf, cfg.CSVOptions(), series...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Index series written to %s\n", output)
	return subcommands.ExitSuccess
}

// fredFetchCmd implements the "fetch fred" command.
type fredFetchCmd struct {
	fetchFlags
}

func (*fredFetchCmd) Name() string     { return "fred" }
func (*fredFetchCmd) Synopsis() string { return "fetches index series from FRED" }
func (*fredFetchCmd) Usage() string {
	return `cgr fetch fred [-from <date>] [-o <file>]

Fetches the index series configured in 'source.fred' from FRED.
`
}

func (c *fredFetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	from, err := c.since()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	client := fred.NewClient()
	return c.fetchAll(cfg, cfg.Source.FRED, func(typ capgrowth.IndexType, id string) (capgrowth.IndexSeries, error) {
		return client.Fetch(ctx, typ, id, from)
	})
}

// inseeFetchCmd implements the "fetch insee" command.
type inseeFetchCmd struct {
	fetchFlags
}

func (*inseeFetchCmd) Name() string     { return "insee" }
func (*inseeFetchCmd) Synopsis() string { return "fetches index series from INSEE" }
func (*inseeFetchCmd) Usage() string {
	return `cgr fetch insee [-from <date>] [-o <file>]

Fetches the index series configured in 'source.insee' from data.insee.fr,
the series being identified by their idBank.
`
}

// inseeInception is the start of the fetched history when none is given.
var inseeInception = date.New(1960, 1, 1)

func (c *inseeFetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	from, err := c.since()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if from.IsZero() {
		from = inseeInception
	}
	client := insee.NewClient()
	r := date.Range{From: from, To: date.Today()}
	return c.fetchAll(cfg, cfg.Source.INSEE, func(typ capgrowth.IndexType, id string) (capgrowth.IndexSeries, error) {
		return client.Fetch(ctx, typ, id, r)
	})
}
