package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClockSleepAdvances(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	c.Sleep(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())

	c.SetTime(start)
	assert.Equal(t, start, c.Now())
}

func TestRealClockNow(t *testing.T) {
	c := NewRealClock()
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before))
}
