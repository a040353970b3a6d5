package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRunsUntilStopped(t *testing.T) {
	s := New(nil)
	defer s.Stop()

	var ticks atomic.Int32
	task, err := s.Every(20*time.Millisecond, func() { ticks.Add(1) })
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	task.Stop()
	task.Stop()

	// Allow an in-flight run to finish before sampling.
	time.Sleep(50 * time.Millisecond)
	stopped := ticks.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
}

func TestEveryWaitsOnePeriod(t *testing.T) {
	s := New(nil)
	defer s.Stop()

	var ticks atomic.Int32
	task, err := s.Every(time.Hour, func() { ticks.Add(1) })
	require.NoError(t, err)
	defer task.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, ticks.Load())
}

func TestEveryInvalidPeriod(t *testing.T) {
	s := New(nil)
	defer s.Stop()

	_, err := s.Every(0, func() {})
	assert.Error(t, err)
}
