package engine

import "github.com/homeland-bloc/atamne/internal/game"

// Effectiveness multipliers are handled in fixed-point quarter units so that
// every damage product stays an exact integer: 2..6 quarters correspond to
// the multipliers 0.5, 0.75, 1.0, 1.25 and 1.5. Base attack values are
// validated at config load to be divisible by 8, which keeps both single
// (attack*q/4) and splash (attack*q/8) damage exact.
const (
	quartersStrongDisadvantage   = 2 // 0.5x, one step backward on the wheel
	quartersModerateDisadvantage = 3 // 0.75x, two steps backward
	quartersNoRelation           = 4 // 1.0x
	quartersModerateAdvantage    = 5 // 1.25x, two steps forward
	quartersStrongAdvantage      = 6 // 1.5x, one step forward
)

// EffectivenessQuarters returns the multiplier for attackGene hitting a
// defender whose first gene is defendGene, in quarter units. The relation is
// not symmetric: it is defined by the defender's offset on the wheel
// relative to the attacker. Neutral attacks are always 1.0x.
func EffectivenessQuarters(attackGene, defendGene game.Gene) int {
	if attackGene == game.GeneNeutral {
		return quartersNoRelation
	}
	ai := game.WheelIndex(attackGene)
	di := game.WheelIndex(defendGene)
	if ai < 0 || di < 0 {
		return quartersNoRelation
	}
	switch (di - ai + 6) % 6 {
	case 1:
		return quartersStrongAdvantage
	case 2:
		return quartersModerateAdvantage
	case 4:
		return quartersModerateDisadvantage
	case 5:
		return quartersStrongDisadvantage
	}
	// Same gene and the distant wheel position are unlisted relations.
	return quartersNoRelation
}

// Effectiveness returns the multiplier as a float for display and AI
// scoring. Damage math never uses this value; it uses the quarter units.
func Effectiveness(attackGene, defendGene game.Gene) float64 {
	return float64(EffectivenessQuarters(attackGene, defendGene)) / 4.0
}

// SingleDamage computes the exact damage of a single attack against the
// defender's first gene.
func SingleDamage(attack int, attackGene, defendGene game.Gene) int {
	return attack * EffectivenessQuarters(attackGene, defendGene) / 4
}

// SplashDamage computes the exact per-target damage of a splash attack:
// half the single damage.
func SplashDamage(attack int, attackGene, defendGene game.Gene) int {
	return attack * EffectivenessQuarters(attackGene, defendGene) / 8
}
