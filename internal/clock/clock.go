// Package clock abstracts time.Now so the store and analytics can be tested
// against a fixed or scripted clock.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

var _ Clock = System{}

// Fixed is a clock frozen at a point in time. Advance moves it forward,
// which is enough to script timer scenarios in tests.
type Fixed struct {
	t time.Time
}

// NewFixed returns a Fixed clock set to t.
func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

// Now returns the frozen time.
func (f *Fixed) Now() time.Time { return f.t }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.t = f.t.Add(d) }

// Set jumps the clock to t.
func (f *Fixed) Set(t time.Time) { f.t = t }

var _ Clock = (*Fixed)(nil)
