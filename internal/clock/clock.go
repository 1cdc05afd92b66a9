// Package clock abstracts time so run durations can be measured
// deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock is an interface for obtaining monotonic time.
type Clock interface {
	// Now returns the current time. Implementations must return
	// monotonically increasing time values.
	Now() time.Time
}

// System is a Clock backed by time.Now, which carries a monotonic reading.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed on c since t.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Mock is a Clock whose time only moves when Advance is called.
// It is safe for concurrent use; the runner reads it from several workers.
type Mock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMock creates a Mock initialized to t.
// If t is zero, it starts at a fixed non-zero instant.
func NewMock(t time.Time) *Mock {
	if t.IsZero() {
		t = time.Unix(1000000000, 0) // 2001-09-09
	}
	return &Mock{current: t}
}

// Now returns the mock's current time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the clock forward by d.
// Panics if d is negative to maintain monotonicity.
func (m *Mock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock.Mock.Advance: duration must be non-negative")
	}
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}
