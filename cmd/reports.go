package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	building string
	date     string
	window   int
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "display the monthly analytics of a building or of all buildings"
}
func (*reportCmd) Usage() string {
	return `rr report [-b <building>] [-d <date>] [-w <months>]

  Displays occupancy counters and, for each month of the window ending with
  the month of the date, the average rent per square foot, the vacancy rate
  and the revenue. Without -b, buildings are merged weighted by area.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.building, "b", "", "Building name (defaults to all buildings)")
	f.StringVar(&c.date, "d", "", "End date of the report (defaults to today)")
	f.IntVar(&c.window, "w", 0, "Number of months (defaults to the configured window)")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	end, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		window := c.window
		if window <= 0 {
			window = s.cfg.Report.Window
		}
		var report *rentroll.Report
		if c.building == "" {
			report = s.reg.PortfolioReport(end, window)
		} else {
			r, err := s.reg.BuildingReport(c.building, end, window)
			if err != nil {
				return false, err
			}
			report = r
		}
		printMarkdown(renderer.RenderReport(renderer.NewReport(report)))
		return false, nil
	})
}

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print the registry as JSON" }
func (*exportCmd) Usage() string {
	return `rr export

  Prints the whole registry as an indented JSON document. Payment accounts
  are masked.
`
}
func (*exportCmd) SetFlags(*flag.FlagSet) {}

func (*exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) (bool, error) {
		return false, rentroll.EncodeRegistry(os.Stdout, s.reg)
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the registry" }
func (*queryCmd) Usage() string {
	return `rr query <jsonpath>

  Evaluates the expression against the JSON export, for instance:

    rr query '$.buildings[*].units[?(@.resident)].number'
`
}
func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "query requires exactly one expression")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		v, err := rentroll.Query(s.reg, f.Arg(0))
		if err != nil {
			return false, err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return false, enc.Encode(v)
	})
}
