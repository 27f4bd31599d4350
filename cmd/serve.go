package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgrowth/web"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves the interactive capital growth page" }
func (*serveCmd) Usage() string {
	return `cgr serve [-addr <host:port>]

Serves a page to pick the index type, the purchase price and date, showing
the capital growth chart, its CAGR and optionally the raw data.

The same analysis is available as JSON on /api/growth and as an image on
/chart.svg and /chart.png, with the page's query parameters: index, price,
purchased and raw.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on. Defaults to the configuration.")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	indexes, err := loadIndexes(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load any index: %v\n", err)
		return subcommands.ExitFailure
	}
	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if !*Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	defaults := web.Defaults{
		Index:     cfg.IndexType(),
		Price:     cfg.Defaults.Price,
		Purchased: cfg.Defaults.Purchased,
		Raw:       cfg.Defaults.Raw,
	}
	srv := web.NewServer(indexes, defaults, cfg.Currency)
	srv.Verbose = *Verbose
	fmt.Fprintf(os.Stderr, "Serving on http://%s\n", addr)
	if err := srv.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
