package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type complainCmd struct {
	unitFlags
	date string
}

func (*complainCmd) Name() string     { return "complain" }
func (*complainCmd) Synopsis() string { return "record a complaint on a unit" }
func (*complainCmd) Usage() string {
	return `rr complain -b <building> -n <unit> [-d <date>] <description>
`
}

func (c *complainCmd) SetFlags(f *flag.FlagSet) {
	c.unitFlags.set(f)
	f.StringVar(&c.date, "d", "", "Date of the complaint (defaults to today)")
}

func (c *complainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	description := strings.Join(f.Args(), " ")
	if !c.ok() || description == "" {
		fmt.Fprintln(os.Stderr, "complain requires -b, -n and a description")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		u, err := s.reg.Unit(c.building, c.number)
		if err != nil {
			return false, err
		}
		u.Complain(on, description)
		fmt.Printf("Complaint #%d recorded on %s/%s\n", len(u.Complaints())-1, c.building, c.number)
		return true, nil
	})
}

type resolveCmd struct {
	unitFlags
	index int
	date  string
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve a complaint on a unit" }
func (*resolveCmd) Usage() string {
	return `rr resolve -b <building> -n <unit> -i <complaint> [-d <date>]
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	c.unitFlags.set(f)
	f.IntVar(&c.index, "i", 0, "Complaint number, as printed by complain")
	f.StringVar(&c.date, "d", "", "Resolution date (defaults to today)")
}

func (c *resolveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.ok() {
		fmt.Fprintln(os.Stderr, "resolve requires -b and -n")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		u, err := s.reg.Unit(c.building, c.number)
		if err != nil {
			return false, err
		}
		if !u.Resolve(c.index, on) {
			return false, fmt.Errorf("no open complaint #%d on %s/%s", c.index, c.building, c.number)
		}
		fmt.Printf("Complaint #%d resolved, %d still open\n", c.index, u.OpenComplaints())
		return true, nil
	})
}
