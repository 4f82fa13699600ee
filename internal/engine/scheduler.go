package engine

import (
	"sort"

	"github.com/homeland-bloc/atamne/internal/game"
)

// ActionThreshold is the action-bar value a combatant must accumulate to
// take a turn. Consumption subtracts exactly one threshold instead of
// resetting to zero, so any overshoot carries forward as a head start
// toward the next action.
const ActionThreshold = 1000

const (
	// turnBuffer is how many upcoming turns are kept simulated ahead.
	turnBuffer = 20
	// displayWindow is the slice of the buffer exposed for rendering.
	displayWindow = 6
)

// TurnScheduler produces a deterministic, lazily-extended turn order from
// per-combatant speed accumulation. Randomness never enters turn order; the
// queue is a pure function of (speeds, alive set, accumulated bars). The
// scheduler is the exclusive owner of every combatant's ActionValue.
type TurnScheduler struct {
	combatants []*game.Combatant
	queue      []*game.Combatant
}

// NewTurnScheduler wraps an existing combatant set without touching its
// accumulated action-bar values, then computes the upcoming-turn buffer.
// Use Initialize for a fresh battle.
func NewTurnScheduler(combatants []*game.Combatant) *TurnScheduler {
	s := &TurnScheduler{combatants: combatants}
	s.recompute()
	return s
}

// Initialize resets every action bar to zero and computes the first
// turn window.
func (s *TurnScheduler) Initialize() {
	for _, c := range s.combatants {
		c.ActionValue = 0
	}
	s.recompute()
}

// PeekCurrent returns the combatant at the front of the queue, or nil when
// nobody can act.
func (s *TurnScheduler) PeekCurrent() *game.Combatant {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

// Display returns the first entries of the upcoming-turn buffer for
// presentation.
func (s *TurnScheduler) Display() []*game.Combatant {
	n := displayWindow
	if n > len(s.queue) {
		n = len(s.queue)
	}
	out := make([]*game.Combatant, n)
	copy(out, s.queue[:n])
	return out
}

// Advance consumes exactly one action-bar-threshold event for the combatant
// that just acted. It is not idempotent: call it exactly once per resolved
// turn. Returns the new front-of-queue combatant and the display slice.
func (s *TurnScheduler) Advance() (*game.Combatant, []*game.Combatant) {
	cur := s.PeekCurrent()
	if cur == nil {
		return nil, nil
	}
	// Bring the authoritative bars to the actor's ready event. The queue
	// front was computed from this exact state, so the actor is always the
	// first combatant to become ready; same-tick peers stay above the
	// threshold and consume their own event on their Advance.
	guard := 0
	for cur.ActionValue < ActionThreshold {
		if !s.tickLiving() || guard > maxSimTicks {
			return nil, nil
		}
		guard++
	}
	cur.ActionValue -= ActionThreshold
	s.queue = s.queue[1:]
	if len(s.queue) < turnBuffer {
		s.recompute()
	}
	return s.PeekCurrent(), s.Display()
}

// OnCombatantDefeated drops a combatant from future scheduling and fully
// recomputes the upcoming-turn buffer from the survivors' current
// action-bar values. Survivors never restart from zero.
func (s *TurnScheduler) OnCombatantDefeated(c *game.Combatant) {
	s.recompute()
}

// OnCombatantsDefeated is the splash variant: one recompute after a batch
// of defeats.
func (s *TurnScheduler) OnCombatantsDefeated(defeated []*game.Combatant) {
	if len(defeated) == 0 {
		return
	}
	s.recompute()
}

// tickLiving adds each living combatant's speed to its bar. Reports false
// when no living combatant can ever reach the threshold.
func (s *TurnScheduler) tickLiving() bool {
	progressed := false
	for _, c := range s.combatants {
		if c.Alive() && c.Speed > 0 {
			c.ActionValue += c.Speed
			progressed = true
		}
	}
	return progressed
}

// maxSimTicks bounds a single buffer computation. With the minimum
// configured speed the threshold is reached well inside this bound; it only
// guards against degenerate zero-speed states.
const maxSimTicks = 100000

// recompute rebuilds the whole upcoming-turn buffer by simulating ticks on
// a copy of the current bars. The authoritative ActionValue fields are not
// consumed here; they advance only through Advance.
func (s *TurnScheduler) recompute() {
	type simEntry struct {
		c   *game.Combatant
		bar int
	}
	sim := make([]*simEntry, 0, len(s.combatants))
	for _, c := range s.combatants {
		if c.Alive() {
			sim = append(sim, &simEntry{c: c, bar: c.ActionValue})
		}
	}
	s.queue = s.queue[:0]
	if len(sim) == 0 {
		return
	}
	ticks := 0
	for len(s.queue) < turnBuffer {
		ready := make([]*simEntry, 0, len(sim))
		for _, e := range sim {
			if e.bar >= ActionThreshold {
				ready = append(ready, e)
			}
		}
		if len(ready) == 0 {
			progressed := false
			for _, e := range sim {
				if e.c.Speed > 0 {
					e.bar += e.c.Speed
					progressed = true
				}
			}
			ticks++
			if !progressed || ticks > maxSimTicks {
				return
			}
			continue
		}
		// Same-tick readiness resolves through a total order: higher bar
		// first, then LOWER base speed, then ally team, then insertion
		// index. The index is unique, so no two keys ever fully tie.
		sort.SliceStable(ready, func(i, j int) bool {
			a, b := ready[i], ready[j]
			if a.bar != b.bar {
				return a.bar > b.bar
			}
			if a.c.Speed != b.c.Speed {
				return a.c.Speed < b.c.Speed
			}
			if a.c.Team != b.c.Team {
				return a.c.Team == game.TeamAlly
			}
			return a.c.SlotIndex < b.c.SlotIndex
		})
		for _, e := range ready {
			if len(s.queue) >= turnBuffer {
				break
			}
			s.queue = append(s.queue, e.c)
			e.bar -= ActionThreshold
		}
	}
}
