package rentroll

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Floor is a level of a building. It owns its units.
type Floor struct {
	number int
	units  map[string]*Unit
}

func (f *Floor) Number() int { return f.number }

// Units returns the floor units sorted by number.
func (f *Floor) Units() []*Unit {
	return slices.SortedFunc(maps.Values(f.units), func(a, b *Unit) int { return cmp.Compare(a.number, b.number) })
}

// Building is a named set of floors. Unit numbers are unique within a building.
type Building struct {
	name   string
	floors map[int]*Floor
}

// NewBuilding creates an empty building.
func NewBuilding(name string) *Building {
	return &Building{name: name, floors: make(map[int]*Floor)}
}

func (b *Building) Name() string { return b.name }

// AddUnit creates a unit on floor 'floor'.
func (b *Building) AddUnit(floor int, number string, area int) (*Unit, error) {
	return b.addUnit(uuid.New(), floor, number, area)
}

func (b *Building) addUnit(id uuid.UUID, floor int, number string, area int) (*Unit, error) {
	if area <= 0 {
		return nil, fmt.Errorf("unit %s/%s area %d: %w", b.name, number, area, ErrInvalidArea)
	}
	if _, exists := b.Unit(number); exists {
		return nil, fmt.Errorf("unit %s/%s: %w", b.name, number, ErrDuplicateUnit)
	}
	f, ok := b.floors[floor]
	if !ok {
		f = &Floor{number: floor, units: make(map[string]*Unit)}
		b.floors[floor] = f
	}
	u := &Unit{id: id, number: number, building: b.name, floor: floor, area: area}
	f.units[number] = u
	return u, nil
}

// Floors returns the floors sorted by number.
func (b *Building) Floors() []*Floor {
	return slices.SortedFunc(maps.Values(b.floors), func(x, y *Floor) int { return cmp.Compare(x.number, y.number) })
}

// Unit returns the unit with that number.
func (b *Building) Unit(number string) (*Unit, bool) {
	for _, f := range b.floors {
		if u, ok := f.units[number]; ok {
			return u, true
		}
	}
	return nil, false
}

// Units iterates over all units, by floor then number.
func (b *Building) Units() iter.Seq[*Unit] {
	return func(yield func(*Unit) bool) {
		for _, f := range b.Floors() {
			for _, u := range f.Units() {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// TotalUnits counts the units.
func (b *Building) TotalUnits() int {
	n := 0
	for _, f := range b.floors {
		n += len(f.units)
	}
	return n
}

// Occupied counts the units with a current resident.
func (b *Building) Occupied() int {
	n := 0
	for u := range b.Units() {
		if !u.IsEmpty() {
			n++
		}
	}
	return n
}

// RentableArea sums the floor area of all units.
func (b *Building) RentableArea() int {
	n := 0
	for u := range b.Units() {
		n += u.area
	}
	return n
}

// OpenComplaints counts open complaints over all units.
func (b *Building) OpenComplaints() int {
	n := 0
	for u := range b.Units() {
		n += u.OpenComplaints()
	}
	return n
}

// MarshalJSON implements the json.Marshaler interface for Building.
func (b *Building) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", b.name)
	w.Append("units", slices.Collect(b.Units()))
	return w.MarshalJSON()
}
