package rentroll

import (
	"fmt"
	"slices"

	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Terms holds the rules used to generate the monthly charges of a lease.
type Terms struct {
	ServiceFee   Money // fixed fee added to every monthly charge
	DueAfterDays int   // days between posting and due date
}

// DefaultTerms are the terms used by NewLease.
var DefaultTerms = Terms{
	ServiceFee:   M(decimal.RequireFromString("3.99"), DefaultCurrency),
	DueAfterDays: 7,
}

// Lease is a tenancy of a Unit over [start, end] at a monthly rent.
//
// Its monthly charges are generated once, when the lease is signed. Editing
// the dates or the rent afterward does not regenerate them: the charges are the
// source of truth.
type Lease struct {
	id      uuid.UUID
	unit    *Unit
	start   date.Date
	end     date.Date
	rent    int
	charges []*Charge // oldest first
}

// NewLease creates a lease using DefaultTerms.
func NewLease(unit *Unit, start, end date.Date, monthlyRent int) (*Lease, error) {
	return DefaultTerms.NewLease(unit, start, end, monthlyRent)
}

// NewLease creates a lease on 'unit' and generates its monthly charges.
//
// Each calendar month touched by [start, end] gets one composite charge,
// posted on the first leased day of that month and made of a prorated "Rent"
// and a "Service Fee".
func (t Terms) NewLease(unit *Unit, start, end date.Date, monthlyRent int) (*Lease, error) {
	switch {
	case unit == nil:
		return nil, ErrNoUnit
	case start.After(end):
		return nil, fmt.Errorf("lease from %s to %s: %w", start, end, ErrInvalidTerm)
	case monthlyRent < 0:
		return nil, fmt.Errorf("lease rent %d: %w", monthlyRent, ErrInvalidRent)
	}
	l := &Lease{
		id:    uuid.New(),
		unit:  unit,
		start: start,
		end:   end,
		rent:  monthlyRent,
	}
	charges, err := t.monthlyCharges(start, end, monthlyRent)
	if err != nil {
		return nil, err
	}
	l.charges = charges
	return l, nil
}

// monthlyCharges walks backward one calendar month at a time from 'end' and
// returns the charges oldest first.
func (t Terms) monthlyCharges(start, end date.Date, monthlyRent int) ([]*Charge, error) {
	cur := t.ServiceFee.Currency()
	var charges []*Charge
	for termEnd := end; !termEnd.Before(start); {
		termStart := date.Max(termEnd.StartOfMonth(), start)
		days := termEnd.Day() - (termStart.Day() - 1)
		inMonth := termEnd.DaysInMonth()

		rent := M(Prorate(monthlyRent, days, inMonth), cur).Round()
		rentName := "Rent"
		if days != inMonth {
			rentName = fmt.Sprintf("Rent (%d/%d days)", days, inMonth)
		}

		monthly := NewCharge(termEnd.Month().String()+" Charge", M(0, cur), termStart, termStart.Add(t.DueAfterDays))
		if err := monthly.Append(NewCharge(rentName, rent, termStart, termStart.Add(t.DueAfterDays))); err != nil {
			return nil, err
		}
		if err := monthly.Append(NewCharge("Service Fee", t.ServiceFee.Round(), termStart, termStart.Add(t.DueAfterDays))); err != nil {
			return nil, err
		}
		charges = append(charges, monthly)

		termEnd = termStart.StartOfMonth().Add(-1)
	}
	slices.Reverse(charges)
	return charges, nil
}

// Prorate returns monthlyRent × days / daysInMonth, unrounded.
func Prorate(monthlyRent, days, daysInMonth int) decimal.Decimal {
	if daysInMonth <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(monthlyRent) * int64(days)).Div(decimal.NewFromInt(int64(daysInMonth)))
}

func (l *Lease) ID() uuid.UUID        { return l.id }
func (l *Lease) Unit() *Unit          { return l.unit }
func (l *Lease) Start() date.Date     { return l.start }
func (l *Lease) End() date.Date       { return l.end }
func (l *Lease) MonthlyRent() int     { return l.rent }
func (l *Lease) Term() date.Range     { return date.Range{From: l.start, To: l.end} }
func (l *Lease) SetStart(d date.Date) { l.start = d }
func (l *Lease) SetEnd(d date.Date)   { l.end = d }
func (l *Lease) SetMonthlyRent(r int) { l.rent = r }

// Charges returns a copy of the monthly charges, oldest first.
func (l *Lease) Charges() []*Charge { return slices.Clone(l.charges) }

// IsFinished reports whether the lease ended before day 'on'.
func (l *Lease) IsFinished(on date.Date) bool { return l.end.Before(on) }

// IsPaid reports whether every monthly charge is paid.
func (l *Lease) IsPaid() bool {
	for _, c := range l.charges {
		if !c.IsPaid() {
			return false
		}
	}
	return true
}

// ActiveOn reports whether the lease counts as active for a period starting
// on 'periodStart': it started strictly before and has not ended yet.
func (l *Lease) ActiveOn(periodStart date.Date) bool {
	return l.start.Before(periodStart) && !l.end.Before(periodStart)
}

// payments returns every payment made on the lease charges.
func (l *Lease) payments() []Payment {
	var all []Payment
	for _, c := range l.charges {
		c.walk(func(c *Charge) { all = append(all, c.payments...) })
	}
	return all
}

// MarshalJSON implements the json.Marshaler interface for Lease.
func (l *Lease) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.id.String())
	w.Append("start", l.start)
	w.Append("end", l.end)
	w.Append("monthlyRent", l.rent)
	w.Append("charges", l.charges)
	return w.MarshalJSON()
}
