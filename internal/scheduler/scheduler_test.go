package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsTask(t *testing.T) {
	var runs atomic.Int32
	s := New(5*time.Millisecond, func() { runs.Add(1) })

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(time.Hour, func() {})

	assert.False(t, s.IsRunning())

	s.Start()
	s.Start() // second start is a no-op
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())

	s.Stop() // stopping twice is safe
	assert.False(t, s.IsRunning())
}

func TestScheduler_NoRunsAfterStop(t *testing.T) {
	var runs atomic.Int32
	s := New(2*time.Millisecond, func() { runs.Add(1) })

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, 2*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
