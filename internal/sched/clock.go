// internal/sched/clock.go

package sched

// Clock is the logical simulation clock. It is moved to each event's timestamp
// and advanced by one after every tick, so it is event-indexed rather than
// wall-clock accurate.
type Clock struct {
	now   int
	ticks int
}

// Set moves the clock to an event timestamp. No tick is counted.
func (c *Clock) Set(t int) {
	c.now = t
}

// Advance moves the clock forward one unit and counts a tick.
func (c *Clock) Advance() {
	c.now++
	c.ticks++
}

// Now returns the current clock value.
func (c *Clock) Now() int {
	return c.now
}

// Ticks returns the number of ticks executed so far.
func (c *Clock) Ticks() int {
	return c.ticks
}
