package rentroll

import (
	"fmt"
	"slices"

	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
)

// Status is the payment status of a Charge at a given day.
//
// It is never stored, it is recomputed from the balance and the due date.
type Status int

const (
	Paid Status = iota
	OnTime
	Overdue
)

func (s Status) String() string {
	switch s {
	case Paid:
		return "paid"
	case OnTime:
		return "on time"
	case Overdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// Charge is a payable line item.
//
// A Charge may contain sub-charges: their amounts are added to the parent's
// amount and balance when appended. A Charge without dates is a pure
// aggregation node; with dates it can be posted, become due, and be paid.
//
// Charges are permanent ledger entries: they are created, extended by Append
// before any payment, paid down by MakePayment, and never deleted.
type Charge struct {
	id       uuid.UUID
	name     string
	amount   Money // original total
	balance  Money // remaining unpaid
	posting  date.Date
	due      date.Date
	payments []Payment
	subs     []*Charge
	parent   *Charge
}

// NewCharge creates a charge of 'amount' posted on 'posting' and due on 'due'.
// Zero dates mean "no date".
func NewCharge(name string, amount Money, posting, due date.Date) *Charge {
	return &Charge{
		id:      uuid.New(),
		name:    name,
		amount:  amount,
		balance: amount,
		posting: posting,
		due:     due,
	}
}

// NewGroup creates an empty aggregation charge with no dates.
func NewGroup(name, currency string) *Charge {
	return NewCharge(name, M(0, currency), date.Date{}, date.Date{})
}

func (c *Charge) ID() uuid.UUID          { return c.id }
func (c *Charge) Name() string           { return c.name }
func (c *Charge) Amount() Money          { return c.amount }
func (c *Charge) PostingDate() date.Date { return c.posting }
func (c *Charge) DueDate() date.Date     { return c.due }

// Parent returns the charge this one was appended to, if any.
func (c *Charge) Parent() (*Charge, bool) { return c.parent, c.parent != nil }

// Balance returns the remaining unpaid amount.
func (c *Charge) Balance() Money { return c.balance }

// AmountPaid returns the part of the amount already paid.
func (c *Charge) AmountPaid() Money { return c.amount.Sub(c.balance) }

// Payments returns a copy of the payments made on this charge, oldest first.
func (c *Charge) Payments() []Payment { return slices.Clone(c.payments) }

// SubCharges returns a copy of the sub-charges, in append order.
func (c *Charge) SubCharges() []*Charge { return slices.Clone(c.subs) }

// LastPayment returns the most recent payment, or false if there is none.
func (c *Charge) LastPayment() (Payment, bool) {
	if len(c.payments) == 0 {
		return Payment{}, false
	}
	return c.payments[len(c.payments)-1], true
}

// Append adds 'sub' to the sub-charges and increases this charge's amount and
// balance by the sub-charge amount.
//
// Appending is only allowed before any payment, and a charge can only belong to
// one parent.
func (c *Charge) Append(sub *Charge) error {
	if len(c.payments) > 0 {
		return fmt.Errorf("cannot append %q to %q: %w", sub.name, c.name, ErrChargeSettled)
	}
	if sub.parent != nil || sub == c {
		return fmt.Errorf("cannot append %q to %q: %w", sub.name, c.name, ErrAlreadyAttached)
	}
	sub.parent = c
	c.subs = append(c.subs, sub)
	c.amount = c.amount.Add(sub.amount)
	c.balance = c.balance.Add(sub.amount)
	return nil
}

// MakePayment applies 'amount' from 'account' to this charge on day 'on'.
//
// On failure nothing is changed. It fails if the amount is not positive, is in
// another currency or exceeds the balance, if the account fails the checksum, or if the charge is a
// sub-charge (payments are made on the top-level composite). On success the
// payment gets the next confirmation number of 'seq' and the balance is
// decremented.
func (c *Charge) MakePayment(seq Sequence, amount Money, account string, on date.Date, note string) (Payment, error) {
	switch {
	case !amount.IsPositive():
		return Payment{}, fmt.Errorf("paying %s on %q: %w", amount, c.name, ErrInvalidAmount)
	case amount.Currency() != c.balance.Currency():
		return Payment{}, fmt.Errorf("paying %s on %q in %s: %w", amount, c.name, c.balance.Currency(), ErrCurrencyMismatch)
	case amount.GreaterThan(c.balance):
		return Payment{}, fmt.Errorf("paying %s on %q with balance %s: %w", amount, c.name, c.balance, ErrExceedsBalance)
	case !ValidAccount(account):
		return Payment{}, fmt.Errorf("paying %s on %q: %w", amount, c.name, ErrInvalidAccount)
	case c.parent != nil:
		return Payment{}, fmt.Errorf("paying %s on %q: %w", amount, c.name, ErrSubChargePayment)
	}

	p := Payment{
		confirmation: seq.Next(),
		on:           on,
		amount:       amount,
		account:      account,
		note:         note,
	}
	c.payments = append(c.payments, p)
	c.balance = c.balance.Sub(amount)
	return p, nil
}

// VoidPayment removes 'p' if it is the last payment made on this charge and
// restores the balance. The confirmation number is not reused.
func (c *Charge) VoidPayment(p Payment) error {
	last, ok := c.LastPayment()
	if !ok || last.confirmation != p.confirmation {
		return fmt.Errorf("voiding payment %d on %q: %w", p.confirmation, c.name, ErrNotLastPayment)
	}
	c.payments = c.payments[:len(c.payments)-1]
	c.balance = c.balance.Add(p.amount)
	return nil
}

// IsPaid reports whether nothing remains to be paid.
func (c *Charge) IsPaid() bool { return !c.balance.IsPositive() }

// IsPartiallyPaid reports whether some of the amount has been paid.
func (c *Charge) IsPartiallyPaid() bool { return c.balance.LessThan(c.amount) }

// IsPosted reports whether the charge is posted on day 'on'.
func (c *Charge) IsPosted(on date.Date) bool {
	return !c.posting.IsZero() && !c.posting.After(on)
}

// IsDue reports whether the due date is strictly before 'on'.
func (c *Charge) IsDue(on date.Date) bool {
	return !c.due.IsZero() && c.due.Before(on)
}

// IsLate reports whether the charge is due and not paid on day 'on'.
func (c *Charge) IsLate(on date.Date) bool { return c.IsDue(on) && !c.IsPaid() }

// Status returns the status of the charge on day 'on'.
func (c *Charge) Status(on date.Date) Status {
	switch {
	case c.IsPaid():
		return Paid
	case !c.IsDue(on):
		return OnTime
	default:
		return Overdue
	}
}

// walk calls f on c and all its sub-charges, depth first.
func (c *Charge) walk(f func(*Charge)) {
	f(c)
	for _, s := range c.subs {
		s.walk(f)
	}
}

// MarshalJSON implements the json.Marshaler interface for Charge.
func (c *Charge) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.id.String())
	w.Append("name", c.name)
	w.Append("amount", c.amount.value)
	w.Append("balance", c.balance.value)
	w.Optional("currency", c.amount.cur)
	w.Optional("posting", c.posting.String())
	w.Optional("due", c.due.String())
	w.Optional("payments", c.payments)
	w.Optional("subCharges", c.subs)
	return w.MarshalJSON()
}
