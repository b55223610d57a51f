package window

import "sync/atomic"

// DefaultCounterStart is the value the first Next() increments from
const DefaultCounterStart = 10

// Counter is the monotonic stacking counter shared by every window operation
type Counter struct {
	v atomic.Int64
}

// NewCounter creates a counter whose first Next() returns start+1
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.v.Store(start)
	return c
}

// Next returns a value strictly greater than every previous one
func (c *Counter) Next() int64 {
	return c.v.Add(1)
}

// Current returns the last value handed out
func (c *Counter) Current() int64 {
	return c.v.Load()
}
