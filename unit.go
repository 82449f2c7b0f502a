package rentroll

import (
	"slices"

	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
)

// Complaint is an issue reported on a unit.
type Complaint struct {
	Opened      date.Date `json:"opened"`
	Description string    `json:"description"`
	Resolved    date.Date `json:"resolved"`
}

// IsOpen reports whether the complaint is not resolved yet.
func (c Complaint) IsOpen() bool { return c.Resolved.IsZero() }

// Unit is a rentable space on a building floor.
//
// Occupancy and lease history are tracked independently: moving a resident
// out keeps the leases.
type Unit struct {
	id         uuid.UUID
	number     string
	building   string
	floor      int
	area       int // sqft
	resident   *Resident
	leases     []*Lease
	complaints []Complaint
}

func (u *Unit) ID() uuid.UUID    { return u.id }
func (u *Unit) Number() string   { return u.number }
func (u *Unit) Building() string { return u.building }
func (u *Unit) Floor() int       { return u.floor }
func (u *Unit) Area() int        { return u.area }

// Resident returns the current occupant, or false if the unit is empty.
func (u *Unit) Resident() (*Resident, bool) { return u.resident, u.resident != nil }

// IsEmpty reports whether the unit has no current occupant.
func (u *Unit) IsEmpty() bool { return u.resident == nil }

// MoveIn sets the current occupant.
func (u *Unit) MoveIn(r *Resident) error {
	if u.resident != nil && u.resident != r {
		return ErrOccupied
	}
	u.resident = r
	return nil
}

// MoveOut empties the unit. The lease history is kept.
func (u *Unit) MoveOut() { u.resident = nil }

// AddLease appends a lease to the history.
func (u *Unit) AddLease(l *Lease) { u.leases = append(u.leases, l) }

// Leases returns a copy of the lease history, in signing order.
func (u *Unit) Leases() []*Lease { return slices.Clone(u.leases) }

// LatestLease returns the most recently added lease, or false if there is none.
func (u *Unit) LatestLease() (*Lease, bool) {
	if len(u.leases) == 0 {
		return nil, false
	}
	return u.leases[len(u.leases)-1], true
}

// Complain records a new open complaint.
func (u *Unit) Complain(on date.Date, description string) {
	u.complaints = append(u.complaints, Complaint{Opened: on, Description: description})
}

// Resolve closes the i-th complaint on day 'on'. It returns false if there is
// no such open complaint.
func (u *Unit) Resolve(i int, on date.Date) bool {
	if i < 0 || i >= len(u.complaints) || !u.complaints[i].IsOpen() {
		return false
	}
	u.complaints[i].Resolved = on
	return true
}

// Complaints returns a copy of all complaints, oldest first.
func (u *Unit) Complaints() []Complaint { return slices.Clone(u.complaints) }

// OpenComplaints counts the complaints not resolved yet.
func (u *Unit) OpenComplaints() int {
	n := 0
	for _, c := range u.complaints {
		if c.IsOpen() {
			n++
		}
	}
	return n
}

// occupiedDuring reports whether any lease of the unit is active for the period starting on periodStart.
func (u *Unit) occupiedDuring(periodStart date.Date) bool {
	return slices.ContainsFunc(u.leases, func(l *Lease) bool { return l.ActiveOn(periodStart) })
}

// MarshalJSON implements the json.Marshaler interface for Unit.
func (u *Unit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", u.id.String())
	w.Append("number", u.number)
	w.Append("floor", u.floor)
	w.Append("area", u.area)
	if u.resident != nil {
		w.Append("resident", u.resident.username)
	}
	w.Optional("leases", u.leases)
	w.Optional("complaints", u.complaints)
	return w.MarshalJSON()
}
