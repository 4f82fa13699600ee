package engine

import "github.com/homeland-bloc/atamne/internal/game"

// splashTargetCap bounds splash targeting. Teams are fixed at 3 members, so
// this is effectively "all living opponents", but the cap is enforced
// explicitly rather than assumed.
const splashTargetCap = 3

// HitResult records one target struck by an attack.
type HitResult struct {
	Target        string  `json:"target"`
	Damage        int     `json:"damage"`
	Effectiveness float64 `json:"effectiveness"`
	// TargetDefeated is set when this hit brought the target to exactly 0.
	TargetDefeated bool `json:"target_defeated"`
}

// AttackResult is the outcome record of one resolved attack.
type AttackResult struct {
	Attacker string          `json:"attacker"`
	Kind     game.AttackKind `json:"kind"`
	Gene     game.Gene       `json:"gene"`
	Hits     []HitResult     `json:"hits"`
}

// CombatResolver applies attacks to targets, computing damage through the
// effectiveness table and mutating combatant HP. It is the only component
// that mutates HP. Defeats are reported to the scheduler so the turn queue
// never references a defeated combatant.
type CombatResolver struct {
	sched *TurnScheduler
}

// NewCombatResolver wires a resolver to the scheduler it must notify.
func NewCombatResolver(sched *TurnScheduler) *CombatResolver {
	return &CombatResolver{sched: sched}
}

// ResolveSingle applies a single attack to one living target.
func (r *CombatResolver) ResolveSingle(attacker *game.Combatant, attackGene game.Gene, target *game.Combatant) (*AttackResult, error) {
	if attacker == nil || !attacker.Alive() {
		return nil, ErrInvalidAttacker
	}
	if target == nil || !target.Alive() {
		return nil, ErrMissingTarget
	}
	dmg := SingleDamage(attacker.Attack, attackGene, target.DefenseGene())
	hit := r.applyDamage(target, dmg, Effectiveness(attackGene, target.DefenseGene()))
	if hit.TargetDefeated {
		r.sched.OnCombatantDefeated(target)
	}
	return &AttackResult{
		Attacker: attacker.Name,
		Kind:     game.AttackSingle,
		Gene:     attackGene,
		Hits:     []HitResult{hit},
	}, nil
}

// ResolveSplash applies a splash attack to up to splashTargetCap living
// members of the opposing team at half potency. The scheduler is notified
// once, after every target is resolved.
func (r *CombatResolver) ResolveSplash(attacker *game.Combatant, attackGene game.Gene, opponents []*game.Combatant) (*AttackResult, error) {
	if attacker == nil || !attacker.Alive() {
		return nil, ErrInvalidAttacker
	}
	targets := make([]*game.Combatant, 0, splashTargetCap)
	for _, t := range opponents {
		if t != nil && t.Alive() {
			targets = append(targets, t)
			if len(targets) == splashTargetCap {
				break
			}
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	res := &AttackResult{
		Attacker: attacker.Name,
		Kind:     game.AttackSplash,
		Gene:     attackGene,
		Hits:     make([]HitResult, 0, len(targets)),
	}
	defeated := make([]*game.Combatant, 0, len(targets))
	for _, t := range targets {
		dmg := SplashDamage(attacker.Attack, attackGene, t.DefenseGene())
		hit := r.applyDamage(t, dmg, Effectiveness(attackGene, t.DefenseGene()))
		res.Hits = append(res.Hits, hit)
		if hit.TargetDefeated {
			defeated = append(defeated, t)
		}
	}
	r.sched.OnCombatantsDefeated(defeated)
	return res, nil
}

// applyDamage clamps HP at zero and reports whether this hit defeated the
// target.
func (r *CombatResolver) applyDamage(target *game.Combatant, dmg int, eff float64) HitResult {
	wasAlive := target.Alive()
	target.CurrentHitPoints -= dmg
	if target.CurrentHitPoints < 0 {
		target.CurrentHitPoints = 0
	}
	return HitResult{
		Target:         target.Name,
		Damage:         dmg,
		Effectiveness:  eff,
		TargetDefeated: wasAlive && target.CurrentHitPoints == 0,
	}
}
