// Package scheduler is a virtual-time registry of delayed and periodic tasks.
//
// Time only moves when Advance is called. The server drives it from a real
// ticker; tests drive it by hand. Tasks are keyed by an owner string so a
// component can drop everything it started with CancelOwner on teardown.
// Tasks scheduled with the Detached owner are never cancelled by owner and
// outlive the component that created them.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Detached is the owner of fire-and-forget tasks
const Detached = ""

// TaskID identifies a scheduled task
type TaskID uint64

type task struct {
	id     TaskID
	owner  string
	due    time.Duration
	period time.Duration
	seq    uint64
	fn     func()
}

// Scheduler holds pending tasks against a virtual clock
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	tasks  map[TaskID]*task
	nextID TaskID
	seq    uint64
	onFire func(owner string)
}

// New creates an empty scheduler at virtual time zero
func New() *Scheduler {
	return &Scheduler{tasks: make(map[TaskID]*task)}
}

// OnFire installs a hook called before every task callback
func (s *Scheduler) OnFire(fn func(owner string)) {
	s.mu.Lock()
	s.onFire = fn
	s.mu.Unlock()
}

// After runs fn once, delay from now
func (s *Scheduler) After(owner string, delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	return s.add(owner, delay, 0, fn)
}

// Every runs fn each period, first at now+period
func (s *Scheduler) Every(owner string, period time.Duration, fn func()) TaskID {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.add(owner, period, period, fn)
}

func (s *Scheduler) add(owner string, delay, period time.Duration, fn func()) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.seq++
	t := &task{
		id:     s.nextID,
		owner:  owner,
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
	}
	s.tasks[t.id] = t
	return t.id
}

// Cancel removes one task
func (s *Scheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// CancelOwner removes every task of owner and returns how many were dropped.
// Detached tasks cannot be cancelled this way.
func (s *Scheduler) CancelOwner(owner string) int {
	if owner == Detached {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, t := range s.tasks {
		if t.owner == owner {
			delete(s.tasks, id)
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due tasks in due-time order
// (ties in scheduling order). Callbacks run without the scheduler lock and
// may schedule more work; anything due within the window fires in the same
// call. Returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}

		s.now = next.due
		if next.period > 0 {
			s.seq++
			next.due += next.period
			next.seq = s.seq
		} else {
			delete(s.tasks, next.id)
		}
		hook, fn, owner := s.onFire, next.fn, next.owner
		s.mu.Unlock()

		if hook != nil {
			hook(owner)
		}
		fn()
		fired++
	}
}

func (s *Scheduler) nextDue(limit time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Pending returns the number of scheduled tasks
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// PendingFor returns the number of tasks held by owner
func (s *Scheduler) PendingFor(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if t.owner == owner {
			n++
		}
	}
	return n
}

// Now returns the virtual clock
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Run calls advance with the real elapsed time on every tick until ctx is done
func Run(ctx context.Context, tick time.Duration, advance func(elapsed time.Duration)) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			advance(now.Sub(last))
			last = now
		}
	}
}
