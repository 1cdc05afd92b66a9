package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMock_DefaultStart(t *testing.T) {
	m := NewMock(time.Time{})
	assert.Equal(t, time.Unix(1000000000, 0), m.Now())
}

func TestMock_Advance(t *testing.T) {
	start := time.Unix(42, 0)
	m := NewMock(start)

	m.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, Since(m, start))
}

func TestMock_AdvanceNegativePanics(t *testing.T) {
	m := NewMock(time.Time{})
	assert.Panics(t, func() { m.Advance(-time.Second) })
}

func TestSystem_Monotonic(t *testing.T) {
	var c System
	a := c.Now()
	b := c.Now()
	assert.False(t, b.Before(a))
}
