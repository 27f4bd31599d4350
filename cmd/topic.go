package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgrowth/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "reads the cgr documentation" }
func (*topicCmd) Usage() string {
	return `cgr topic [<topic>...]

Prints the documentation topics: how capital growth is reconstructed, how the
CAGR is computed, the configuration file, the index sources and the page
served by 'cgr serve'.

Without topic it prints the list of topics, and '*' prints them all.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	md, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
