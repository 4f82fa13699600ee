package engine

import "errors"

// All engine failures are recoverable, discriminated results: the battle
// state is left unmodified on any rejected operation. ErrTurnInProgress and
// ErrNoTurnResolved guard the two halves of the resolve-advance cycle; both
// are normal, expected conditions (a double submit, a stray advance), not
// exceptional.
var (
	ErrInvalidRosterSize   = errors.New("roster must contain exactly 3 creatures")
	ErrTurnInProgress      = errors.New("a turn is already being resolved")
	ErrNoTurnResolved      = errors.New("no resolved turn to advance")
	ErrInvalidAttacker     = errors.New("attacker is not the current living combatant")
	ErrInvalidAttackOption = errors.New("attack is not one of the combatant's options")
	ErrNoTargets           = errors.New("no available targets")
	ErrMissingTarget       = errors.New("single attacks require a living target")
	ErrBattleEnded         = errors.New("battle already ended")
)
