package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/renderer"
	"github.com/google/subcommands"
)

// unitFlags selects a unit by building and number.
type unitFlags struct {
	building string
	number   string
}

func (u *unitFlags) set(f *flag.FlagSet) {
	f.StringVar(&u.building, "b", "", "Building name")
	f.StringVar(&u.number, "n", "", "Unit number")
}

func (u *unitFlags) ok() bool { return u.building != "" && u.number != "" }

type signCmd struct {
	unitFlags
	resident string
	start    string
	end      string
	rent     int
}

func (*signCmd) Name() string     { return "sign" }
func (*signCmd) Synopsis() string { return "sign a lease and generate its monthly charges" }
func (*signCmd) Usage() string {
	return `rr sign -b <building> -n <unit> -r <resident> -s <start> -e <end> -rent <amount>

  Signs a lease on the unit for the resident and moves them in. One charge is
  generated per calendar month of the term, with a prorated rent and the
  service fee.
`
}

func (c *signCmd) SetFlags(f *flag.FlagSet) {
	c.unitFlags.set(f)
	f.StringVar(&c.resident, "r", "", "Resident username")
	f.StringVar(&c.start, "s", "", "First day of the lease (defaults to today)")
	f.StringVar(&c.end, "e", "", "Last day of the lease")
	f.IntVar(&c.rent, "rent", 0, "Monthly rent")
}

func (c *signCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.ok() || c.resident == "" || c.end == "" {
		fmt.Fprintln(os.Stderr, "sign requires -b, -n, -r and -e")
		return subcommands.ExitUsageError
	}
	start, err := parseDay(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDay(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		u, err := s.reg.Unit(c.building, c.number)
		if err != nil {
			return false, err
		}
		res, err := s.reg.Resident(c.resident)
		if err != nil {
			return false, err
		}
		l, err := s.reg.SignLease(u, res, start, end, c.rent)
		if err != nil {
			return false, err
		}
		printMarkdown(renderer.RenderLease(renderer.NewLease(l)))
		return true, nil
	})
}

type moveOutCmd struct {
	unitFlags
}

func (*moveOutCmd) Name() string     { return "move-out" }
func (*moveOutCmd) Synopsis() string { return "empty a unit, keeping its lease history" }
func (*moveOutCmd) Usage() string {
	return `rr move-out -b <building> -n <unit>
`
}
func (c *moveOutCmd) SetFlags(f *flag.FlagSet) { c.unitFlags.set(f) }

func (c *moveOutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.ok() {
		fmt.Fprintln(os.Stderr, "move-out requires -b and -n")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		u, err := s.reg.Unit(c.building, c.number)
		if err != nil {
			return false, err
		}
		if u.IsEmpty() {
			fmt.Printf("Unit %s/%s is already empty\n", c.building, c.number)
			return false, nil
		}
		u.MoveOut()
		fmt.Printf("Unit %s/%s is now empty\n", c.building, c.number)
		return true, nil
	})
}

type leaseCmd struct {
	unitFlags
}

func (*leaseCmd) Name() string { return "lease" }
func (*leaseCmd) Synopsis() string {
	return "display the charge schedule of the latest lease of a unit"
}
func (*leaseCmd) Usage() string {
	return `rr lease -b <building> -n <unit>
`
}
func (c *leaseCmd) SetFlags(f *flag.FlagSet) { c.unitFlags.set(f) }

func (c *leaseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.ok() {
		fmt.Fprintln(os.Stderr, "lease requires -b and -n")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		u, err := s.reg.Unit(c.building, c.number)
		if err != nil {
			return false, err
		}
		l, ok := u.LatestLease()
		if !ok {
			return false, fmt.Errorf("unit %s/%s has no lease: %w", c.building, c.number, rentroll.ErrNotFound)
		}
		printMarkdown(renderer.RenderLease(renderer.NewLease(l)))
		return false, nil
	})
}

type statementCmd struct {
	date string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display the account statement of a resident" }
func (*statementCmd) Usage() string {
	return `rr statement [-d <date>] <username>

  Lists the charges posted on the date, their status, and the payments made.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Statement date (defaults to today)")
}

func (c *statementCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "statement requires exactly one username")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		res, err := s.reg.Resident(f.Arg(0))
		if err != nil {
			return false, err
		}
		printMarkdown(renderer.RenderStatement(renderer.NewStatement(res, on)))
		return false, nil
	})
}
