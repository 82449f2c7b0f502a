package rentroll

import (
	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
)

// The Restore functions rebuild ledger entities from persisted state. They
// bypass generation and validation: the stored values are trusted as they were
// produced by the ledger itself.

// RestorePayment rebuilds a payment.
func RestorePayment(confirmation int64, on date.Date, amount Money, account, note string) Payment {
	return Payment{confirmation: confirmation, on: on, amount: amount, account: account, note: note}
}

// RestoreCharge rebuilds a charge with its payments and sub-charges.
func RestoreCharge(id uuid.UUID, name string, amount, balance Money, posting, due date.Date, payments []Payment, subs []*Charge) *Charge {
	c := &Charge{
		id:       id,
		name:     name,
		amount:   amount,
		balance:  balance,
		posting:  posting,
		due:      due,
		payments: payments,
		subs:     subs,
	}
	for _, s := range subs {
		s.parent = c
	}
	return c
}

// RestoreLease rebuilds a lease with its already generated charges.
func RestoreLease(id uuid.UUID, unit *Unit, start, end date.Date, monthlyRent int, charges []*Charge) *Lease {
	return &Lease{id: id, unit: unit, start: start, end: end, rent: monthlyRent, charges: charges}
}

// RestoreUnit rebuilds a unit with its identifier.
func (b *Building) RestoreUnit(id uuid.UUID, floor int, number string, area int) (*Unit, error) {
	return b.addUnit(id, floor, number, area)
}

// RestoreComplaint rebuilds a complaint on the unit.
func (u *Unit) RestoreComplaint(c Complaint) { u.complaints = append(u.complaints, c) }
