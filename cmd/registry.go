package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentroll"
	"github.com/google/subcommands"
)

type addBuildingCmd struct{}

func (*addBuildingCmd) Name() string     { return "add-building" }
func (*addBuildingCmd) Synopsis() string { return "add an empty building" }
func (*addBuildingCmd) Usage() string {
	return `rr add-building <name>

  Adds a building to the registry. Building names are unique.
`
}
func (*addBuildingCmd) SetFlags(*flag.FlagSet) {}

func (c *addBuildingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "add-building requires exactly one building name")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		if _, err := s.reg.AddBuilding(f.Arg(0)); err != nil {
			return false, err
		}
		fmt.Printf("Building %q added\n", f.Arg(0))
		return true, nil
	})
}

type addUnitCmd struct {
	building string
	floor    int
	number   string
	area     int
}

func (*addUnitCmd) Name() string     { return "add-unit" }
func (*addUnitCmd) Synopsis() string { return "add a unit to a building floor" }
func (*addUnitCmd) Usage() string {
	return `rr add-unit -b <building> -floor <n> -n <number> -area <sqft>

  Adds a rentable unit. Unit numbers are unique within a building.
`
}

func (c *addUnitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.building, "b", "", "Building name")
	f.IntVar(&c.floor, "floor", 1, "Floor number")
	f.StringVar(&c.number, "n", "", "Unit number")
	f.IntVar(&c.area, "area", 0, "Unit area in square feet")
}

func (c *addUnitCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.building == "" || c.number == "" {
		fmt.Fprintln(os.Stderr, "add-unit requires -b and -n")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		b, ok := s.reg.Building(c.building)
		if !ok {
			return false, fmt.Errorf("building %q: %w", c.building, rentroll.ErrNotFound)
		}
		if _, err := b.AddUnit(c.floor, c.number, c.area); err != nil {
			return false, err
		}
		fmt.Printf("Unit %s/%s added\n", c.building, c.number)
		return true, nil
	})
}

type addResidentCmd struct {
	name string
}

func (*addResidentCmd) Name() string     { return "add-resident" }
func (*addResidentCmd) Synopsis() string { return "register a resident" }
func (*addResidentCmd) Usage() string {
	return `rr add-resident -name <display name> <username>
`
}

func (c *addResidentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name, defaults to the username")
}

func (c *addResidentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "add-resident requires exactly one username")
		return subcommands.ExitUsageError
	}
	username, name := f.Arg(0), c.name
	if name == "" {
		name = username
	}
	return run(ctx, func(s *session) (bool, error) {
		if err := s.reg.AddUser(rentroll.NewResident(username, name, s.reg.Currency())); err != nil {
			return false, err
		}
		fmt.Printf("Resident %q added\n", username)
		return true, nil
	})
}

type addAdminCmd struct {
	name string
}

func (*addAdminCmd) Name() string     { return "add-admin" }
func (*addAdminCmd) Synopsis() string { return "register an administrator" }
func (*addAdminCmd) Usage() string {
	return `rr add-admin -name <display name> <username>
`
}

func (c *addAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name, defaults to the username")
}

func (c *addAdminCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "add-admin requires exactly one username")
		return subcommands.ExitUsageError
	}
	username, name := f.Arg(0), c.name
	if name == "" {
		name = username
	}
	return run(ctx, func(s *session) (bool, error) {
		if err := s.reg.AddUser(rentroll.NewAdmin(username, name)); err != nil {
			return false, err
		}
		fmt.Printf("Admin %q added\n", username)
		return true, nil
	})
}
