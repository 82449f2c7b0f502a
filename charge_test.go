package rentroll

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/rentroll/date"
)

func TestCharge_Append(t *testing.T) {
	parent := NewCharge("March Charge", USD(0), day(time.March, 1), day(time.March, 8))
	if err := parent.Append(NewCharge("Rent", USD(1500), day(time.March, 1), day(time.March, 8))); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	fee := NewCharge("Service Fee", USD(3.99), day(time.March, 1), day(time.March, 8))
	if err := parent.Append(fee); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if got, want := parent.Amount(), USD(1503.99); !got.Equal(want) {
		t.Errorf("Amount() = %v, want %v", got, want)
	}
	if got, want := parent.Balance(), USD(1503.99); !got.Equal(want) {
		t.Errorf("Balance() = %v, want %v", got, want)
	}
	if got := len(parent.SubCharges()); got != 2 {
		t.Errorf("len(SubCharges()) = %d, want 2", got)
	}
	if p, ok := fee.Parent(); !ok || p != parent {
		t.Errorf("Parent() = %v, %v, want the composite charge", p, ok)
	}

	// a sub-charge cannot be attached twice
	other := NewGroup("Other", "USD")
	if err := other.Append(fee); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("Append() of an attached charge error = %v, want %v", err, ErrAlreadyAttached)
	}
}

func TestCharge_AppendAfterPayment(t *testing.T) {
	c := NewCharge("Deposit", USD(500), day(time.January, 1), day(time.January, 8))
	seq := NewCounter(ConfirmationBase)
	if _, err := c.MakePayment(seq, USD(100), validAccount, day(time.January, 2), ""); err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}
	err := c.Append(NewCharge("Late Fee", USD(25), day(time.January, 9), day(time.January, 16)))
	if !errors.Is(err, ErrChargeSettled) {
		t.Errorf("Append() error = %v, want %v", err, ErrChargeSettled)
	}
	if got := c.Amount(); !got.Equal(USD(500)) {
		t.Errorf("Amount() = %v, want unchanged", got)
	}
}

func TestCharge_MakePayment(t *testing.T) {
	seq := NewCounter(ConfirmationBase)
	today := day(time.June, 10)
	c := NewCharge("Rent", USD(1000), day(time.June, 1), day(time.June, 8))

	// Paying more than the balance is rejected without any change.
	if _, err := c.MakePayment(seq, USD(1200), validAccount, today, ""); !errors.Is(err, ErrExceedsBalance) {
		t.Errorf("MakePayment(1200) error = %v, want %v", err, ErrExceedsBalance)
	}
	if got := c.Balance(); !got.Equal(USD(1000)) {
		t.Errorf("Balance() = %v, want 1000", got)
	}
	if _, ok := c.LastPayment(); ok {
		t.Errorf("LastPayment() found a payment after a rejected one")
	}

	first, err := c.MakePayment(seq, USD(400), validAccount, today, "first")
	if err != nil {
		t.Fatalf("MakePayment(400) error = %v", err)
	}
	if got := c.Balance(); !got.Equal(USD(600)) {
		t.Errorf("Balance() = %v, want 600", got)
	}
	if got := c.AmountPaid(); !got.Equal(USD(400)) {
		t.Errorf("AmountPaid() = %v, want 400", got)
	}
	if first.Confirmation() <= ConfirmationBase {
		t.Errorf("Confirmation() = %d, want > %d", first.Confirmation(), ConfirmationBase)
	}

	second, err := c.MakePayment(seq, USD(600), validAccount, today, "")
	if err != nil {
		t.Fatalf("MakePayment(600) error = %v", err)
	}
	if second.Confirmation() <= first.Confirmation() {
		t.Errorf("Confirmation() = %d, want > %d", second.Confirmation(), first.Confirmation())
	}
	if last, ok := c.LastPayment(); !ok || last.Confirmation() != second.Confirmation() {
		t.Errorf("LastPayment() = %v, %v, want %v", last, ok, second)
	}
	if !c.IsPaid() {
		t.Errorf("IsPaid() = false after paying the full amount")
	}

	// balance = amount - sum(payments)
	total := USD(0)
	for _, p := range c.Payments() {
		total = total.Add(p.Amount())
	}
	if got := c.Amount().Sub(total); !got.Equal(c.Balance()) {
		t.Errorf("amount - payments = %v, want balance %v", got, c.Balance())
	}
}

func TestCharge_MakePaymentRejections(t *testing.T) {
	testCases := []struct {
		name    string
		amount  Money
		account string
		want    error
	}{
		{"Too much", USD(100.01), validAccount, ErrExceedsBalance},
		{"Zero", USD(0), validAccount, ErrInvalidAmount},
		{"Negative", USD(-5), validAccount, ErrInvalidAmount},
		{"Bad checksum", USD(50), "4111111111111112", ErrInvalidAccount},
		{"Empty account", USD(50), "", ErrInvalidAccount},
		{"Other currency", M(50, "EUR"), validAccount, ErrCurrencyMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seq := NewCounter(ConfirmationBase)
			c := NewCharge("Rent", USD(100), day(time.June, 1), day(time.June, 8))
			_, err := c.MakePayment(seq, tc.amount, tc.account, day(time.June, 2), "")
			if !errors.Is(err, tc.want) {
				t.Errorf("MakePayment() error = %v, want %v", err, tc.want)
			}
			if !c.Balance().Equal(USD(100)) || len(c.Payments()) != 0 {
				t.Errorf("MakePayment() changed the charge: balance %v, %d payments", c.Balance(), len(c.Payments()))
			}
			if seq.Last() != ConfirmationBase {
				t.Errorf("MakePayment() consumed a confirmation number")
			}
		})
	}
}

func TestCharge_SubChargePayment(t *testing.T) {
	parent := NewGroup("March Charge", "USD")
	rent := NewCharge("Rent", USD(1500), day(time.March, 1), day(time.March, 8))
	if err := parent.Append(rent); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	_, err := rent.MakePayment(NewCounter(0), USD(10), validAccount, day(time.March, 2), "")
	if !errors.Is(err, ErrSubChargePayment) {
		t.Errorf("MakePayment() on a sub-charge error = %v, want %v", err, ErrSubChargePayment)
	}
}

func TestCharge_PaymentsSnapshot(t *testing.T) {
	c := NewCharge("Rent", USD(100), day(time.June, 1), day(time.June, 8))
	if _, err := c.MakePayment(NewCounter(0), USD(10), validAccount, day(time.June, 2), ""); err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}
	payments := c.Payments()
	payments[0] = Payment{}
	if got := c.Payments()[0].Amount(); !got.Equal(USD(10)) {
		t.Errorf("Payments() returned a live slice: %v", got)
	}
}

func TestCharge_Predicates(t *testing.T) {
	posting, due := day(time.March, 1), day(time.March, 8)
	testCases := []struct {
		name        string
		paid        float64 // amount paid on a 100 charge
		on          date.Date
		wantPosted  bool
		wantDue     bool
		wantLate    bool
		wantPartial bool
		wantStatus  Status
	}{
		{"Before posting", 0, day(time.February, 28), false, false, false, false, OnTime},
		{"On posting day", 0, posting, true, false, false, false, OnTime},
		{"On due day", 0, due, true, false, false, false, OnTime},
		{"Day after due", 0, due.Add(1), true, true, true, false, Overdue},
		{"Partially paid and due", 40, due.Add(1), true, true, true, true, Overdue},
		{"Paid and due", 100, due.Add(1), true, true, false, true, Paid},
		{"Paid early", 100, posting, true, false, false, true, Paid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCharge("Rent", USD(100), posting, due)
			if tc.paid > 0 {
				if _, err := c.MakePayment(NewCounter(0), USD(tc.paid), validAccount, posting, ""); err != nil {
					t.Fatalf("MakePayment() error = %v", err)
				}
			}
			if got := c.IsPosted(tc.on); got != tc.wantPosted {
				t.Errorf("IsPosted(%v) = %v, want %v", tc.on, got, tc.wantPosted)
			}
			if got := c.IsDue(tc.on); got != tc.wantDue {
				t.Errorf("IsDue(%v) = %v, want %v", tc.on, got, tc.wantDue)
			}
			if got := c.IsLate(tc.on); got != tc.wantLate {
				t.Errorf("IsLate(%v) = %v, want %v", tc.on, got, tc.wantLate)
			}
			if got := c.IsPartiallyPaid(); got != tc.wantPartial {
				t.Errorf("IsPartiallyPaid() = %v, want %v", got, tc.wantPartial)
			}
			if got := c.Status(tc.on); got != tc.wantStatus {
				t.Errorf("Status(%v) = %v, want %v", tc.on, got, tc.wantStatus)
			}
		})
	}
}

func TestCharge_GroupHasNoDates(t *testing.T) {
	g := NewGroup("Deposits", "USD")
	on := day(time.December, 31)
	if g.IsPosted(on) || g.IsDue(on) {
		t.Errorf("a group charge should never be posted nor due")
	}
	if g.Status(on) != Paid {
		t.Errorf("Status() = %v, want %v for an empty group", g.Status(on), Paid)
	}
}

func TestCharge_VoidPayment(t *testing.T) {
	seq := NewCounter(ConfirmationBase)
	c := NewCharge("Rent", USD(100), day(time.June, 1), day(time.June, 8))
	first, err := c.MakePayment(seq, USD(30), validAccount, day(time.June, 2), "")
	if err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}
	second, err := c.MakePayment(seq, USD(20), validAccount, day(time.June, 3), "")
	if err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}

	if err := c.VoidPayment(first); !errors.Is(err, ErrNotLastPayment) {
		t.Errorf("VoidPayment(first) error = %v, want %v", err, ErrNotLastPayment)
	}
	if err := c.VoidPayment(second); err != nil {
		t.Fatalf("VoidPayment(second) error = %v", err)
	}
	if !c.Balance().Equal(USD(70)) || len(c.Payments()) != 1 {
		t.Errorf("after VoidPayment() balance = %v with %d payments, want 70.00 with 1", c.Balance(), len(c.Payments()))
	}

	third, err := c.MakePayment(seq, USD(20), validAccount, day(time.June, 4), "")
	if err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}
	if third.Confirmation() != second.Confirmation()+1 {
		t.Errorf("Confirmation() = %d, want %d", third.Confirmation(), second.Confirmation()+1)
	}
}
