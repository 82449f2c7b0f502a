package rentroll

import "sync/atomic"

// ConfirmationBase is the seed of confirmation numbers. The first payment of a
// fresh registry is confirmed as ConfirmationBase+1.
const ConfirmationBase int64 = 100100

// Sequence hands out strictly increasing confirmation numbers.
type Sequence interface {
	Next() int64
}

// Counter is an in-memory Sequence safe for concurrent use.
type Counter struct {
	last atomic.Int64
}

// NewCounter returns a Counter whose first number is last+1.
func NewCounter(last int64) *Counter {
	c := new(Counter)
	c.last.Store(last)
	return c
}

// Next returns the next confirmation number.
func (c *Counter) Next() int64 { return c.last.Add(1) }

// Last returns the last number handed out (or the seed).
func (c *Counter) Last() int64 { return c.last.Load() }
