package service

import (
	"sync"
	"time"
)

// TaskRegistry tracks the pending delayed AI turn per battle, so a newer
// schedule or a battle end can cancel the one in flight.
type TaskRegistry struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{timers: make(map[string]*time.Timer)}
}

// Schedule runs fn after delay, replacing any pending task for the same
// battle code.
func (r *TaskRegistry) Schedule(battleCode string, delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[battleCode]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		r.mu.Lock()
		// A replacement may have been scheduled between this timer firing
		// and the wrapper running; only forget the entry when it is still
		// this timer.
		if r.timers[battleCode] == t {
			delete(r.timers, battleCode)
		}
		r.mu.Unlock()
		fn()
	})
	r.timers[battleCode] = t
}

// Cancel stops and forgets the pending task for a battle, if any.
func (r *TaskRegistry) Cancel(battleCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[battleCode]; ok {
		t.Stop()
		delete(r.timers, battleCode)
	}
}

// CancelAll stops every pending task; used on shutdown.
func (r *TaskRegistry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, t := range r.timers {
		t.Stop()
		delete(r.timers, code)
	}
}
