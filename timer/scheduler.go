// Package timer schedules deferred and repeating callbacks against game time.
//
// Nothing here runs on its own goroutine: the owner advances the scheduler
// once per frame and due callbacks fire synchronously inside Advance, in due
// order. Every scheduled task returns a Handle that can be stopped.
package timer

import (
	"container/heap"
	"time"
)

// Scheduler runs callbacks when game time reaches their due time.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	queue   taskQueue
	pending int
	closed  bool
}

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current game time.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// Pending reports how many tasks are still scheduled.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	return s.pending
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	return s.schedule(d, 0, fn)
}

// Every runs fn repeatedly, first after interval and then every interval
// until the returned handle is stopped. A non-positive interval yields an
// inactive handle.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Handle {
	if interval <= 0 {
		return &Handle{}
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(delay, interval time.Duration, fn func()) *Handle {
	if s == nil || s.closed || fn == nil {
		return &Handle{}
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
		owner:    s,
	}
	heap.Push(&s.queue, t)
	s.pending++
	return &Handle{task: t}
}

// Advance moves game time forward by dt and fires every task that becomes
// due, in due order. Tasks scheduled by callbacks fire in the same call if
// they fall inside the window. Repeating tasks catch up one interval at a time.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil || s.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.stopped {
			heap.Pop(&s.queue)
			continue
		}
		if next.due > target {
			break
		}
		s.now = next.due
		if next.interval > 0 {
			next.due += next.interval
			heap.Fix(&s.queue, 0)
		} else {
			heap.Pop(&s.queue)
			next.stopped = true
			s.pending--
		}
		next.fn()
		if s.closed {
			return
		}
	}
	s.now = target
}

// Close stops every pending task. Later scheduling calls return inactive handles.
func (s *Scheduler) Close() {
	if s == nil || s.closed {
		return
	}
	for _, t := range s.queue {
		t.stopped = true
	}
	s.queue = nil
	s.pending = 0
	s.closed = true
}

// Handle controls a scheduled task.
type Handle struct {
	task *task
}

// Stop cancels the task. It reports whether the task was still active.
func (h *Handle) Stop() bool {
	if h == nil || h.task == nil || h.task.stopped {
		return false
	}
	h.task.stopped = true
	if h.task.owner != nil {
		h.task.owner.pending--
	}
	return true
}

// Active reports whether the task will still fire.
func (h *Handle) Active() bool {
	return h != nil && h.task != nil && !h.task.stopped
}

type task struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	stopped  bool
	owner    *Scheduler
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
