package service

import "sync"

// battleLocks serializes turn resolution per battle code within this
// process. The persisted turn-in-progress flag rejects the loser of a race;
// the lock only ensures the two resolutions never interleave their
// load-resolve-save cycles.
var battleLocks = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: make(map[string]*sync.Mutex)}

func lockBattle(code string) func() {
	battleLocks.mu.Lock()
	l, ok := battleLocks.locks[code]
	if !ok {
		l = &sync.Mutex{}
		battleLocks.locks[code] = l
	}
	battleLocks.mu.Unlock()
	l.Lock()
	return l.Unlock
}
