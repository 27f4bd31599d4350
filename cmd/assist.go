package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/capgrowth/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	purchaseFlags
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "discusses the capital growth of a purchase with an AI assistant"
}
func (*assistCmd) Usage() string {
	return `cgr assist [-index real|nominal] [-price <price>] [-purchased <date>] [<prompt>...]

Starts an interactive session with a Gemini assistant that knows the
analysis of the purchase, and can compute alternative scenarios.

It requires a Gemini API key in the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	g, err := c.analyze(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", explain(err))
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	wb := &agent.Workbench{Indexes: indexes, Currency: cfg.Currency, Growth: g}
	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(wb), agent.NewEconomist())
	a.Print = printMarkdownTo

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
