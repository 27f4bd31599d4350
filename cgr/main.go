// Command cgr reconstructs the capital growth of a property purchase from a
// house price index.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capgrowth/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion(flag.CommandLine).Complete("cgr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	// Unknown subcommands are looked up as cgr-<subcommand> extensions.
	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
