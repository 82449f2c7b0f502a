package rentroll

import (
	"errors"
	"testing"
	"time"
)

// newTestRegistry creates a registry with building "Elm" (units 101 and 102)
// and a resident "jdoe" leasing 101 from January to March 2024 at 1000.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry("USD", DefaultTerms, nil)
	b, err := r.AddBuilding("Elm")
	if err != nil {
		t.Fatalf("AddBuilding() error = %v", err)
	}
	for _, number := range []string{"101", "102"} {
		if _, err := b.AddUnit(1, number, 50); err != nil {
			t.Fatalf("AddUnit() error = %v", err)
		}
	}
	if err := r.AddUser(NewAdmin("root", "Root")); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	res := NewResident("jdoe", "Jane Doe", "USD")
	if err := r.AddUser(res); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if _, err := r.SignLease(mustUnit(t, b, "101"), res, day(time.January, 1), day(time.March, 31), 1000); err != nil {
		t.Fatalf("SignLease() error = %v", err)
	}
	return r
}

func TestRegistry_Lookups(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.AddBuilding("Elm"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddBuilding() duplicate error = %v, want %v", err, ErrDuplicateName)
	}
	if err := r.AddUser(NewAdmin("jdoe", "Impostor")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddUser() duplicate error = %v, want %v", err, ErrDuplicateName)
	}

	testCases := []struct {
		name             string
		building, number string
		want             error
	}{
		{"Found", "Elm", "101", nil},
		{"Unknown building", "Oak", "101", ErrNotFound},
		{"Unknown unit", "Elm", "999", ErrNotFound},
	}
	for _, tc := range testCases {
		if _, err := r.Unit(tc.building, tc.number); !errors.Is(err, tc.want) {
			t.Errorf("%s: Unit(%q, %q) error = %v, want %v", tc.name, tc.building, tc.number, err, tc.want)
		}
	}

	if _, err := r.Resident("root"); !errors.Is(err, ErrNoLedger) {
		t.Errorf("Resident(root) error = %v, want %v", err, ErrNoLedger)
	}
	if _, err := r.Resident("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resident(nobody) error = %v, want %v", err, ErrNotFound)
	}
	if got := len(r.Users()); got != 2 {
		t.Errorf("len(Users()) = %d, want 2", got)
	}
}

func TestRegistry_SignLease(t *testing.T) {
	r := newTestRegistry(t)
	res, err := r.Resident("jdoe")
	if err != nil {
		t.Fatalf("Resident() error = %v", err)
	}
	u, err := r.Unit("Elm", "101")
	if err != nil {
		t.Fatalf("Unit() error = %v", err)
	}

	if occupant, ok := u.Resident(); !ok || occupant != res {
		t.Errorf("Resident() = %v, %v, want jdoe", occupant, ok)
	}
	ul, _ := u.LatestLease()
	rl, _ := res.LatestLease()
	if ul == nil || ul != rl {
		t.Errorf("unit and resident do not share the signed lease")
	}
	if got := len(res.Charges()); got != 3 {
		t.Errorf("len(Charges()) = %d, want 3", got)
	}

	other := NewResident("bob", "Bob", "USD")
	if _, err := r.SignLease(u, other, day(time.April, 1), day(time.April, 30), 1000); !errors.Is(err, ErrOccupied) {
		t.Errorf("SignLease() on occupied unit error = %v, want %v", err, ErrOccupied)
	}
	if _, err := r.SignLease(mustUnit(t, mustBuilding(t, r, "Elm"), "102"), other, day(time.April, 30), day(time.April, 1), 1000); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("SignLease() reversed term error = %v, want %v", err, ErrInvalidTerm)
	}
	if len(other.Leases()) != 0 {
		t.Errorf("a failed SignLease() attached a lease")
	}

	// The same resident can renew.
	if _, err := r.SignLease(u, res, day(time.April, 1), day(time.April, 30), 1100); err != nil {
		t.Errorf("SignLease() renewal error = %v", err)
	}
	if got := len(res.Leases()); got != 2 {
		t.Errorf("len(Leases()) = %d, want 2", got)
	}
}

func TestRegistry_SignLeaseCurrencyMismatch(t *testing.T) {
	testCases := []struct {
		name     string
		terms    Terms
		resident string
	}{
		{"Terms", Terms{ServiceFee: M(3.99, "EUR"), DueAfterDays: 7}, "USD"},
		{"Resident", DefaultTerms, "EUR"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry("USD", tc.terms, nil)
			b, err := r.AddBuilding("Elm")
			if err != nil {
				t.Fatalf("AddBuilding() error = %v", err)
			}
			u, err := b.AddUnit(1, "101", 50)
			if err != nil {
				t.Fatalf("AddUnit() error = %v", err)
			}
			res := NewResident("jdoe", "Jane Doe", tc.resident)
			if _, err := r.SignLease(u, res, day(time.January, 1), day(time.March, 31), 1000); !errors.Is(err, ErrCurrencyMismatch) {
				t.Errorf("SignLease() error = %v, want %v", err, ErrCurrencyMismatch)
			}
			if !u.IsEmpty() || len(res.Leases()) != 0 {
				t.Errorf("a failed SignLease() attached the lease")
			}
		})
	}
}

func TestRegistry_Pay(t *testing.T) {
	r := newTestRegistry(t)
	res, _ := r.Resident("jdoe")
	charges := res.Charges()

	c, ok := r.Charge(charges[1].ID())
	if !ok || c != charges[1] {
		t.Fatalf("Charge(%v) = %v, %v", charges[1].ID(), c, ok)
	}
	sub := c.SubCharges()[0]
	if found, ok := r.Charge(sub.ID()); !ok || found != sub {
		t.Errorf("Charge() did not find a sub-charge")
	}

	var last int64
	for i, c := range charges {
		p, err := r.Pay(c, c.Balance(), validAccount, c.PostingDate(), "")
		if err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if want := ConfirmationBase + int64(i) + 1; p.Confirmation() != want {
			t.Errorf("Confirmation() = %d, want %d", p.Confirmation(), want)
		}
		if p.Confirmation() <= last {
			t.Errorf("Confirmation() = %d, not greater than %d", p.Confirmation(), last)
		}
		last = p.Confirmation()
	}
	if !res.IsFullyPaid() {
		t.Errorf("IsFullyPaid() = false after paying every charge")
	}
}

func TestRegistry_Reports(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.BuildingReport("Oak", day(time.March, 31), 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("BuildingReport(Oak) error = %v, want %v", err, ErrNotFound)
	}
	br, err := r.BuildingReport("Elm", day(time.March, 31), 3)
	if err != nil {
		t.Fatalf("BuildingReport() error = %v", err)
	}
	pr := r.PortfolioReport(day(time.March, 31), 3)
	for i, p := range br.VacancyRate() {
		if q := pr.VacancyRate()[i]; p != q {
			t.Errorf("portfolio of one building: VacancyRate()[%d] = %v, want %v", i, q, p)
		}
	}
}

func mustBuilding(t *testing.T, r *Registry, name string) *Building {
	t.Helper()
	b, ok := r.Building(name)
	if !ok {
		t.Fatalf("Building(%q) not found", name)
	}
	return b
}
