package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// MonthOf returns the calendar month containing d.
func MonthOf(d Date) Range { return Range{From: d.StartOfMonth(), To: d.EndOfMonth()} }

// TrailingMonths returns the n consecutive calendar months that end with the
// month containing 'end', oldest first.
func TrailingMonths(end Date, n int) []Range {
	if n <= 0 {
		return nil
	}
	ranges := make([]Range, n)
	current := MonthOf(end)
	for i := n - 1; i >= 0; i-- {
		ranges[i] = current
		current = MonthOf(current.From.Add(-1))
	}
	return ranges
}

// Identifier compute a short identifier for the Range.
func (r Range) Identifier() string {
	switch {
	case r.From == r.To:
		return r.From.String()
	case r == MonthOf(r.From):
		return r.From.Format("2006-01")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
