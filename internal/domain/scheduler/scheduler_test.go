package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	s := New()
	calls := 0
	s.After("win_1", 300*time.Millisecond, func() { calls++ })

	assert.Equal(t, 0, s.Advance(299*time.Millisecond))
	assert.Equal(t, 0, calls)

	assert.Equal(t, 1, s.Advance(time.Millisecond))
	assert.Equal(t, 1, calls)

	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())
}

func TestOrderByDueThenInsertion(t *testing.T) {
	s := New()
	var order []string
	s.After(Detached, 200*time.Millisecond, func() { order = append(order, "b") })
	s.After(Detached, 100*time.Millisecond, func() { order = append(order, "a") })
	s.After(Detached, 200*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestEvery(t *testing.T) {
	s := New()
	ticks := 0
	id := s.Every("clock", time.Second, func() { ticks++ })

	s.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	require.True(t, s.Cancel(id))
	s.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestChainedTasksFireWithinWindow(t *testing.T) {
	s := New()
	var at []time.Duration
	var step func()
	step = func() {
		at = append(at, s.Now())
		if len(at) < 4 {
			s.After("term", 300*time.Millisecond, step)
		}
	}
	s.After("term", 300*time.Millisecond, step)

	s.Advance(time.Second)

	assert.Equal(t, []time.Duration{300 * time.Millisecond, 600 * time.Millisecond, 900 * time.Millisecond}, at)
	s.Advance(200 * time.Millisecond)
	assert.Len(t, at, 4)
}

func TestCancelOwner(t *testing.T) {
	s := New()
	fired := map[string]int{}
	s.After("win_a", time.Second, func() { fired["a"]++ })
	s.Every("win_a", time.Second, func() { fired["a"]++ })
	s.After("win_b", time.Second, func() { fired["b"]++ })
	s.After(Detached, time.Second, func() { fired["reply"]++ })

	assert.Equal(t, 2, s.CancelOwner("win_a"))
	assert.Equal(t, 0, s.CancelOwner(Detached), "detached tasks survive")
	assert.Equal(t, 1, s.PendingFor("win_b"))

	s.Advance(time.Second)

	assert.Equal(t, map[string]int{"b": 1, "reply": 1}, fired)
}

func TestNegativeDurations(t *testing.T) {
	s := New()
	calls := 0
	s.After(Detached, -time.Second, func() { calls++ })

	s.Advance(-time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, time.Duration(0), s.Now())
}

func TestOnFire(t *testing.T) {
	s := New()
	var owners []string
	s.OnFire(func(owner string) { owners = append(owners, owner) })
	s.After("win_x", 0, func() {})

	s.Advance(0)

	assert.Equal(t, []string{"win_x"}, owners)
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var total atomic.Int64
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, 5*time.Millisecond, func(d time.Duration) {
			total.Add(int64(d))
		})
	}()

	require.Eventually(t, func() bool {
		return total.Load() >= int64(20*time.Millisecond)
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
