package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnceAtDueTime(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.After(2400*time.Millisecond, func() { fired++ })

	s.Advance(2399 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.True(t, h.Active())

	s.Advance(2 * time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.False(t, h.Active())
	assert.Equal(t, 0, s.Pending())

	s.Advance(10 * time.Second)
	assert.Equal(t, 1, fired)
}

func TestEveryRepeatsUntilStopped(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.Every(250*time.Millisecond, func() { fired++ })

	s.Advance(249 * time.Millisecond)
	require.Equal(t, 0, fired)

	s.Advance(time.Millisecond)
	require.Equal(t, 1, fired)

	s.Advance(750 * time.Millisecond)
	require.Equal(t, 4, fired)

	require.True(t, h.Stop())
	assert.False(t, h.Stop())
	s.Advance(time.Second)
	assert.Equal(t, 4, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestAdvanceFiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(20*time.Millisecond, func() { order = append(order, "b1") })
	s.After(20*time.Millisecond, func() { order = append(order, "b2") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
}

func TestCallbackSeesItsDueTime(t *testing.T) {
	s := NewScheduler()
	var seen []time.Duration
	s.Every(100*time.Millisecond, func() { seen = append(seen, s.Now()) })

	s.Advance(350 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, seen)
	assert.Equal(t, 350*time.Millisecond, s.Now())
}

func TestTasksScheduledFromCallbacksFireInWindow(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(10*time.Millisecond, func() {
		s.After(10*time.Millisecond, func() { fired = true })
	})

	s.Advance(25 * time.Millisecond)
	assert.True(t, fired)
}

func TestStopFromInsideCallback(t *testing.T) {
	s := NewScheduler()
	fired := 0
	var h *Handle
	h = s.Every(10*time.Millisecond, func() {
		fired++
		if fired == 2 {
			h.Stop()
		}
	})

	s.Advance(time.Second)
	assert.Equal(t, 2, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestCloseStopsEverything(t *testing.T) {
	s := NewScheduler()
	fired := 0
	a := s.After(10*time.Millisecond, func() { fired++ })
	b := s.Every(10*time.Millisecond, func() { fired++ })

	s.Close()
	assert.False(t, a.Active())
	assert.False(t, b.Active())
	assert.False(t, a.Stop())

	s.Advance(time.Second)
	assert.Equal(t, 0, fired)

	late := s.After(time.Millisecond, func() { fired++ })
	assert.False(t, late.Active())
	assert.Equal(t, 0, s.Pending())
}

func TestDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		h    func(*Scheduler) *Handle
	}{
		{name: "nil callback", h: func(s *Scheduler) *Handle { return s.After(time.Second, nil) }},
		{name: "zero interval", h: func(s *Scheduler) *Handle { return s.Every(0, func() {}) }},
		{name: "negative interval", h: func(s *Scheduler) *Handle { return s.Every(-time.Second, func() {}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			h := tt.h(s)
			require.NotNil(t, h)
			assert.False(t, h.Active())
			assert.False(t, h.Stop())
			assert.Equal(t, 0, s.Pending())
		})
	}

	var nilHandle *Handle
	assert.False(t, nilHandle.Stop())
	assert.False(t, nilHandle.Active())
}

func TestNegativeDelayFiresOnNextAdvance(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(-time.Second, func() { fired = true })
	s.Advance(0)
	assert.True(t, fired)
}
