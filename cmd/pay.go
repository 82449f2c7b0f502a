package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/date"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type payCmd struct {
	charge   string
	resident string
	amount   string
	account  string
	date     string
	note     string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "pay a charge" }
func (*payCmd) Usage() string {
	return `rr pay (-c <charge id> | -r <resident>) -a <amount> -account <number> [-d <date>] [-note <text>]

  Applies a payment to a monthly charge. With -r, the oldest posted charge
  that is not fully paid is selected. The payment is rejected if the amount
  is not positive, exceeds the balance, or if the account number fails the
  checksum.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.charge, "c", "", "Charge id")
	f.StringVar(&c.resident, "r", "", "Resident username, pays its oldest unpaid charge")
	f.StringVar(&c.amount, "a", "", "Amount to pay")
	f.StringVar(&c.account, "account", "", "Payment account number")
	f.StringVar(&c.date, "d", "", "Payment date (defaults to today)")
	f.StringVar(&c.note, "note", "", "Optional note")
}

func (c *payCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.charge == "") == (c.resident == "") || c.amount == "" {
		fmt.Fprintln(os.Stderr, "pay requires one of -c or -r, and -a")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) (bool, error) {
		amount, err := rentroll.ParseMoney(c.amount, s.reg.Currency())
		if err != nil {
			return false, err
		}
		charge, err := c.find(s.reg, on)
		if err != nil {
			return false, err
		}
		p, err := s.reg.Pay(charge, amount, c.account, on, c.note)
		if err != nil {
			return false, err
		}
		fmt.Printf("Paid %s on %q, confirmation %d, remaining %s\n", p.Amount(), charge.Name(), p.Confirmation(), charge.Balance())
		return true, nil
	})
}

// find selects the charge to pay.
func (c *payCmd) find(reg *rentroll.Registry, on date.Date) (*rentroll.Charge, error) {
	if c.charge != "" {
		id, err := uuid.Parse(c.charge)
		if err != nil {
			return nil, fmt.Errorf("invalid charge id %q: %w", c.charge, err)
		}
		charge, ok := reg.Charge(id)
		if !ok {
			return nil, fmt.Errorf("charge %s: %w", id, rentroll.ErrNotFound)
		}
		return charge, nil
	}
	res, err := reg.Resident(c.resident)
	if err != nil {
		return nil, err
	}
	for _, charge := range res.Charges() {
		if charge.IsPosted(on) && !charge.IsPaid() {
			return charge, nil
		}
	}
	return nil, errors.New("nothing to pay")
}
