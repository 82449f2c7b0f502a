package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"db":     predict.Files("*"),
			"v":      predict.Nothing,
		},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Command.Name(), flag.ContinueOnError)
		c.Command.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predictFlag(f.Name)
		})
		root.Sub[c.Command.Name()] = sub
	}
	return root
}

func predictFlag(name string) complete.Predictor {
	switch name {
	case "d", "s", "e", "end":
		return predict.Nothing
	default:
		return predict.Something
	}
}
