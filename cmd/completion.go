package cmd

import (
	"flag"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flags that are not free text, by flag name.
var predictors = map[string]complete.Predictor{
	"config": predict.Files("*.yaml"),
	"o":      predict.Files("*"),
	"format": predict.Set{"md", "html", "pdf"},
	"raw":    predict.Set{"true", "false"},
}

func init() {
	var types predict.Set
	for _, t := range capgrowth.IndexTypes() {
		types = append(types, t.String())
	}
	predictors["index"] = types
}

// Completion returns the shell completion tree of cgr, with the global flags of fs.
func Completion(fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(fs),
	}
	for _, c := range Commands {
		root.Sub[c.Command.Name()] = command(c.Command)
	}
	root.Sub["fetch"].Sub = map[string]*complete.Command{
		"fred":  command(&fredFetchCmd{}),
		"insee": command(&inseeFetchCmd{}),
	}
	root.Sub["topic"].Args = topicPredictor{}
	return root
}

func command(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	return &complete.Command{Flags: flags(fs)}
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}

// topicPredictor completes documentation topics.
type topicPredictor struct{}

func (topicPredictor) Predict(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}
