package rentroll

import (
	"fmt"
	"slices"

	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
)

// Registry is the property registry: buildings, users, the lease terms and
// the confirmation sequence shared by all payments.
type Registry struct {
	currency  string
	terms     Terms
	seq       Sequence
	buildings []*Building
	users     []User
}

// NewRegistry creates an empty registry. A nil seq starts a new Counter at ConfirmationBase.
func NewRegistry(currency string, terms Terms, seq Sequence) *Registry {
	if seq == nil {
		seq = NewCounter(ConfirmationBase)
	}
	return &Registry{
		currency:  currency,
		terms:     terms,
		seq:       seq,
		buildings: []*Building{},
		users:     []User{},
	}
}

func (r *Registry) Currency() string   { return r.currency }
func (r *Registry) Terms() Terms       { return r.terms }
func (r *Registry) Sequence() Sequence { return r.seq }

// AddBuilding creates a new empty building.
func (r *Registry) AddBuilding(name string) (*Building, error) {
	if _, exists := r.Building(name); exists {
		return nil, fmt.Errorf("building %q: %w", name, ErrDuplicateName)
	}
	b := NewBuilding(name)
	r.buildings = append(r.buildings, b)
	return b, nil
}

// Building returns the building with that name.
func (r *Registry) Building(name string) (*Building, bool) {
	i := slices.IndexFunc(r.buildings, func(b *Building) bool { return b.name == name })
	if i < 0 {
		return nil, false
	}
	return r.buildings[i], true
}

// Buildings returns the buildings in insertion order.
func (r *Registry) Buildings() []*Building { return slices.Clone(r.buildings) }

// Unit finds a unit by building name and unit number.
func (r *Registry) Unit(building, number string) (*Unit, error) {
	b, ok := r.Building(building)
	if !ok {
		return nil, fmt.Errorf("building %q: %w", building, ErrNotFound)
	}
	u, ok := b.Unit(number)
	if !ok {
		return nil, fmt.Errorf("unit %s/%s: %w", building, number, ErrNotFound)
	}
	return u, nil
}

// AddUser registers a user. Usernames are unique.
func (r *Registry) AddUser(u User) error {
	if _, exists := r.User(u.Username()); exists {
		return fmt.Errorf("user %q: %w", u.Username(), ErrDuplicateName)
	}
	r.users = append(r.users, u)
	return nil
}

// User returns the user with that username.
func (r *Registry) User(username string) (User, bool) {
	i := slices.IndexFunc(r.users, func(u User) bool { return u.Username() == username })
	if i < 0 {
		return nil, false
	}
	return r.users[i], true
}

// Users returns all users in registration order.
func (r *Registry) Users() []User { return slices.Clone(r.users) }

// Resident returns the resident with that username.
func (r *Registry) Resident(username string) (*Resident, error) {
	u, ok := r.User(username)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	res, ok := u.(*Resident)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, ErrNoLedger)
	}
	return res, nil
}

// SignLease creates a lease with the registry terms, attaches it to the unit
// and the resident, and moves the resident in.
func (r *Registry) SignLease(u *Unit, res *Resident, start, end date.Date, monthlyRent int) (*Lease, error) {
	if other, ok := u.Resident(); ok && other != res {
		return nil, fmt.Errorf("signing %s/%s for %q: %w", u.building, u.number, res.username, ErrOccupied)
	}
	if cur := r.terms.ServiceFee.Currency(); cur != r.currency || res.currency != r.currency {
		return nil, fmt.Errorf("signing %s/%s for %q in %s with %s terms: %w", u.building, u.number, res.username, r.currency, cur, ErrCurrencyMismatch)
	}
	l, err := r.terms.NewLease(u, start, end, monthlyRent)
	if err != nil {
		return nil, fmt.Errorf("signing %s/%s for %q: %w", u.building, u.number, res.username, err)
	}
	u.AddLease(l)
	res.AddLease(l)
	if err := u.MoveIn(res); err != nil {
		return nil, err
	}
	return l, nil
}

// Charge finds a charge (at any depth) by id.
func (r *Registry) Charge(id uuid.UUID) (*Charge, bool) {
	var found *Charge
	for _, b := range r.buildings {
		for u := range b.Units() {
			for _, l := range u.leases {
				for _, c := range l.charges {
					c.walk(func(c *Charge) {
						if c.id == id {
							found = c
						}
					})
				}
			}
		}
	}
	return found, found != nil
}

// Pay applies a payment to a charge using the registry sequence.
func (r *Registry) Pay(c *Charge, amount Money, account string, on date.Date, note string) (Payment, error) {
	return c.MakePayment(r.seq, amount, account, on, note)
}

// Void cancels the last payment made on a charge, when it could not be persisted.
func (r *Registry) Void(c *Charge, p Payment) error {
	return c.VoidPayment(p)
}

// BuildingReport computes the analytics of one building.
func (r *Registry) BuildingReport(name string, end date.Date, window int) (*Report, error) {
	b, ok := r.Building(name)
	if !ok {
		return nil, fmt.Errorf("building %q: %w", name, ErrNotFound)
	}
	return NewBuildingReport(b, end, window), nil
}

// PortfolioReport computes the analytics merged across all buildings.
func (r *Registry) PortfolioReport(end date.Date, window int) *Report {
	return NewPortfolioReport(r.buildings, end, window)
}

// MarshalJSON implements the json.Marshaler interface for Registry.
func (r *Registry) MarshalJSON() ([]byte, error) {
	type juser struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Kind     string `json:"kind"`
	}
	users := make([]juser, 0, len(r.users))
	for _, u := range r.users {
		kind := "admin"
		if _, ok := LedgerOf(u); ok {
			kind = "resident"
		}
		users = append(users, juser{u.Username(), u.DisplayName(), kind})
	}
	var w jsonObjectWriter
	w.Append("currency", r.currency)
	w.Append("users", users)
	w.Append("buildings", r.buildings)
	return w.MarshalJSON()
}
