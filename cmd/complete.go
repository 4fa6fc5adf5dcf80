package cmd

import (
	"flag"
	"maps"

	"github.com/etnz/positions/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictor is implemented by subcommands that know the values of their
// flags or arguments.
type predictor interface {
	predict() (flags map[string]complete.Predictor, args complete.Predictor)
}

// Completion returns the shell completion tree of pos, built from the flags
// of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				sub.Flags[f.Name] = predict.Nothing
				return
			}
			sub.Flags[f.Name] = predict.Something
		})
		if p, ok := c.(predictor); ok {
			flags, args := p.predict()
			maps.Copy(sub.Flags, flags)
			sub.Args = args
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

var (
	predictAction      = predict.Set{"long", "short"}
	predictOrderAction = predict.Set{"buy", "sell"}
)

func (*addCmd) predict() (map[string]complete.Predictor, complete.Predictor) {
	return map[string]complete.Predictor{"action": predictAction}, nil
}

func (*orderCmd) predict() (map[string]complete.Predictor, complete.Predictor) {
	return map[string]complete.Predictor{"action": predictOrderAction}, nil
}

func (*sortCmd) predict() (map[string]complete.Predictor, complete.Predictor) {
	return map[string]complete.Predictor{
		"by":            predict.Set{"id", "value", "price", "income", "change"},
		"dir":           predict.Set{"asc", "desc"},
		"closed-bottom": predict.Set{"true", "false"},
	}, nil
}

func (*topicCmd) predict() (map[string]complete.Predictor, complete.Predictor) {
	topics, _ := docs.GetAllTopics()
	return nil, predict.Set(append(topics, docs.Index, "*"))
}
