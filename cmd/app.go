// Package cmd implements the cgr command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/config"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Commands are all cgr subcommands and their group.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"analysis", &growthCmd{}},
	{"analysis", &chartCmd{}},
	{"analysis", &reportCmd{}},
	{"data", &fetchCmd{}},
	{"interactive", &serveCmd{}},
	{"interactive", &assistCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// DefaultConfigFile is read when present and no configuration is given.
const DefaultConfigFile = "cgr.yaml"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "Path to the configuration file, "+DefaultConfigFile+" if it exists, or the built-in one.")
var currency = flag.String("currency", os.Getenv(EnvCurrency), "Currency of purchase prices, overrides the configuration.")
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Verbose output.")

func envBool(name string) bool {
	b, _ := strconv.ParseBool(os.Getenv(name))
	return b
}

// SetupLogging silences log unless verbose.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// loadConfig reads the application configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	if *currency != "" {
		cfg.Currency = *currency
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func readConfig() (*config.Config, error) {
	if *configFile != "" {
		return config.Load(*configFile)
	}
	cfg, err := config.Load(DefaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no %s, using the built-in configuration", DefaultConfigFile)
		return config.Default(), nil
	}
	return cfg, err
}

// loadIndexes reads every index type available in the source file.
func loadIndexes(cfg *config.Config) (map[capgrowth.IndexType]capgrowth.IndexSeries, error) {
	indexes := make(map[capgrowth.IndexType]capgrowth.IndexSeries)
	var errs error
	for _, typ := range capgrowth.IndexTypes() {
		s, err := cfg.LoadIndex(typ)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		indexes[typ] = s
	}
	if len(indexes) == 0 {
		return nil, errs
	}
	if errs != nil {
		log.Printf("some indexes are unavailable: %v", errs)
	}
	return indexes, nil
}

// printMarkdown prints md to stdout, styled when it is a terminal.
func printMarkdown(md string) { printMarkdownTo(os.Stdout, md) }

func printMarkdownTo(w io.Writer, md string) {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(w, out)
				return
			}
		}
	}
	fmt.Fprintln(w, md)
}
