package rentroll

import (
	"slices"

	"github.com/etnz/rentroll/date"
)

// User is an account known to the registry: either an *Admin or a *Resident.
type User interface {
	Username() string
	DisplayName() string
	isUser()
}

// HasLedger is implemented by users that owe charges.
type HasLedger interface {
	Charges() []*Charge
	Balance(on date.Date) Money
	IsLate(on date.Date) bool
	IsFullyPaid() bool
}

// LedgerOf returns the ledger of u, if it has one.
func LedgerOf(u User) (HasLedger, bool) {
	l, ok := u.(HasLedger)
	return l, ok
}

// Admin manages the registry. It has no ledger.
type Admin struct {
	username string
	name     string
}

// NewAdmin creates an admin account.
func NewAdmin(username, name string) *Admin { return &Admin{username: username, name: name} }

func (a *Admin) Username() string    { return a.username }
func (a *Admin) DisplayName() string { return a.name }
func (*Admin) isUser()               {}

// Resident is a tenant. Its ledger is the concatenation of the charges of
// every lease ever assigned to it; balance and lateness are derived.
type Resident struct {
	username string
	name     string
	currency string
	leases   []*Lease
	charges  []*Charge
}

// NewResident creates a resident with an empty ledger in 'currency'.
func NewResident(username, name, currency string) *Resident {
	return &Resident{username: username, name: name, currency: currency}
}

func (r *Resident) Username() string    { return r.username }
func (r *Resident) DisplayName() string { return r.name }
func (r *Resident) Currency() string    { return r.currency }
func (*Resident) isUser()               {}

// AddLease assigns a lease to the resident and adds its charges to the ledger.
func (r *Resident) AddLease(l *Lease) {
	r.leases = append(r.leases, l)
	r.charges = append(r.charges, l.charges...)
}

// Leases returns a copy of the lease history, in assignment order.
func (r *Resident) Leases() []*Lease { return slices.Clone(r.leases) }

// LatestLease returns the last assigned lease, or false if there is none.
func (r *Resident) LatestLease() (*Lease, bool) {
	if len(r.leases) == 0 {
		return nil, false
	}
	return r.leases[len(r.leases)-1], true
}

// Charges returns a copy of all charges, in lease then month order.
func (r *Resident) Charges() []*Charge { return slices.Clone(r.charges) }

// Balance sums the remaining balance of the charges posted on day 'on'.
func (r *Resident) Balance(on date.Date) Money {
	total := M(0, r.currency)
	for _, c := range r.charges {
		if c.IsPosted(on) {
			total = total.Add(c.Balance())
		}
	}
	return total
}

// IsLate reports whether any charge is late on day 'on'.
func (r *Resident) IsLate(on date.Date) bool {
	return slices.ContainsFunc(r.charges, func(c *Charge) bool { return c.IsLate(on) })
}

// IsFullyPaid reports whether every charge is paid.
func (r *Resident) IsFullyPaid() bool {
	return !slices.ContainsFunc(r.charges, func(c *Charge) bool { return !c.IsPaid() })
}

var (
	_ User      = (*Admin)(nil)
	_ User      = (*Resident)(nil)
	_ HasLedger = (*Resident)(nil)
)
