package rentroll

import (
	"fmt"
	"testing"
	"time"

	"github.com/etnz/rentroll/date"
)

// validAccount passes the Luhn checksum.
const validAccount = "4111111111111111"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create dates in 2024.
func day(m time.Month, d int) date.Date { return date.New(2024, m, d) }

// newTestBuilding creates a building with units of the given areas on floor 1,
// numbered "101", "102", ...
func newTestBuilding(t *testing.T, name string, areas ...int) *Building {
	t.Helper()
	b := NewBuilding(name)
	for i, area := range areas {
		if _, err := b.AddUnit(1, unitNumber(i), area); err != nil {
			t.Fatalf("AddUnit() error = %v", err)
		}
	}
	return b
}

func unitNumber(i int) string { return fmt.Sprintf("1%02d", i+1) }

// mustUnit returns the unit or fails the test.
func mustUnit(t *testing.T, b *Building, number string) *Unit {
	t.Helper()
	u, ok := b.Unit(number)
	if !ok {
		t.Fatalf("Unit(%q) not found in %q", number, b.Name())
	}
	return u
}
