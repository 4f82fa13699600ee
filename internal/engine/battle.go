package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/homeland-bloc/atamne/internal/game"
)

// rosterSize is the fixed team size on both sides.
const rosterSize = 3

// Setup builds a battle from two rosters of exactly three creature
// templates each. Combatants are clones: battle mutations never leak back
// to the persistent roster. The scheduler starts from zeroed action bars,
// so the opening turn order is a pure function of the configured speeds.
func Setup(battleCode string, allies, opponents []game.Creature, difficulty Difficulty) (*game.Battle, error) {
	if len(allies) != rosterSize || len(opponents) != rosterSize {
		return nil, ErrInvalidRosterSize
	}
	b := &game.Battle{
		BattleCode: battleCode,
		Phase:      game.PhaseSetup,
		Difficulty: string(difficulty),
		Combatants: make([]game.Combatant, 0, 2*rosterSize),
	}
	slot := 0
	appendTeam := func(roster []game.Creature, team game.Team) {
		seen := map[string]int{}
		for _, tpl := range roster {
			seen[tpl.Name]++
			name := tpl.Name
			if seen[tpl.Name] > 1 {
				name = tpl.Name + "#" + strconv.Itoa(seen[tpl.Name])
			}
			b.Combatants = append(b.Combatants, game.Combatant{
				Name:             name,
				Template:         tpl.Name,
				Genes:            tpl.Genes,
				MaxHitPoints:     tpl.HitPoints,
				CurrentHitPoints: tpl.HitPoints,
				Attack:           tpl.Attack,
				Speed:            tpl.Speed,
				Team:             team,
				SlotIndex:        slot,
			})
			slot++
		}
	}
	appendTeam(allies, game.TeamAlly)
	appendTeam(opponents, game.TeamOpponent)

	orch := NewOrchestrator(b)
	orch.sched.Initialize()
	b.Phase = game.PhaseBattle
	b.Message = "Battle started"
	return b, nil
}

// TurnOutcome is the result shape of one processed turn. Battle end is a
// terminal state transition surfaced here, never an error.
type TurnOutcome struct {
	Result      *AttackResult `json:"result"`
	BattleEnded bool          `json:"battle_ended"`
	Winner      game.Team     `json:"winner,omitempty"`
}

// Orchestrator composes scheduler, resolver and AI into the battle
// lifecycle. It is the only component allowed to sequence
// resolve -> advance, and it owns the turn-in-progress flag.
type Orchestrator struct {
	battle   *game.Battle
	sched    *TurnScheduler
	resolver *CombatResolver
}

// NewOrchestrator attaches to a battle, rebuilding the scheduler from the
// persisted action-bar values. Because turn order is deterministic in that
// state, a reloaded battle resumes with an identical upcoming-turn buffer.
func NewOrchestrator(b *game.Battle) *Orchestrator {
	pointers := make([]*game.Combatant, 0, len(b.Combatants))
	for i := range b.Combatants {
		pointers = append(pointers, &b.Combatants[i])
	}
	sched := NewTurnScheduler(pointers)
	return &Orchestrator{
		battle:   b,
		sched:    sched,
		resolver: NewCombatResolver(sched),
	}
}

// Battle exposes the orchestrated battle state.
func (o *Orchestrator) Battle() *game.Battle { return o.battle }

// Current returns the combatant whose turn it is, or nil when the battle
// cannot continue. Presentation reads this query instead of sharing a
// mutable current-turn field.
func (o *Orchestrator) Current() *game.Combatant {
	if o.battle.Phase != game.PhaseBattle {
		return nil
	}
	return o.sched.PeekCurrent()
}

// DisplayQueue returns the upcoming turns for rendering.
func (o *Orchestrator) DisplayQueue() []*game.Combatant { return o.sched.Display() }

// AvailableTargets lists the living opponents of the current actor.
func (o *Orchestrator) AvailableTargets() []*game.Combatant {
	cur := o.Current()
	if cur == nil {
		return nil
	}
	return o.battle.LivingMembers(cur.Team.Opposing())
}

// ProcessTurn resolves the current combatant's chosen attack. It acquires
// the turn-in-progress flag; AdvanceTurn releases it. A second call while
// the flag is held returns ErrTurnInProgress with the state untouched.
func (o *Orchestrator) ProcessTurn(opt game.AttackOption, targetName string) (*TurnOutcome, error) {
	if o.battle.Phase == game.PhaseEnded {
		return nil, ErrBattleEnded
	}
	if o.battle.TurnInProgress {
		return nil, ErrTurnInProgress
	}
	attacker := o.Current()
	if attacker == nil || !attacker.Alive() {
		return nil, ErrInvalidAttacker
	}
	if !legalOption(attacker, opt) {
		return nil, ErrInvalidAttackOption
	}

	var result *AttackResult
	var err error
	switch opt.Kind {
	case game.AttackSplash:
		result, err = o.resolver.ResolveSplash(attacker, opt.Gene, o.battle.LivingMembers(attacker.Team.Opposing()))
	case game.AttackSingle:
		if targetName == "" {
			return nil, ErrMissingTarget
		}
		target := o.findLivingOpponent(attacker.Team, targetName)
		if target == nil {
			return nil, ErrMissingTarget
		}
		result, err = o.resolver.ResolveSingle(attacker, opt.Gene, target)
	default:
		return nil, ErrMissingTarget
	}
	if err != nil {
		return nil, err
	}

	o.battle.TurnCount++
	o.battle.TurnInProgress = true
	o.battle.LastTurnSummary = summarize(result)

	outcome := &TurnOutcome{Result: result}
	if winner, ended := o.checkBattleEnd(); ended {
		o.battle.Phase = game.PhaseEnded
		o.battle.Winner = winner
		o.battle.TurnInProgress = false
		o.battle.Message = endMessage(winner)
		outcome.BattleEnded = true
		outcome.Winner = winner
	}
	return outcome, nil
}

// AdvanceTurn releases the turn flag and consumes one scheduler event for
// the combatant that just acted. Valid exactly once per resolved turn: a
// call with no turn held is rejected with the state untouched, so scheduler
// events can never be consumed for turns that were never resolved.
func (o *Orchestrator) AdvanceTurn() (*game.Combatant, []*game.Combatant, error) {
	if o.battle.Phase == game.PhaseEnded {
		return nil, nil, ErrBattleEnded
	}
	if !o.battle.TurnInProgress {
		return nil, nil, ErrNoTurnResolved
	}
	o.battle.TurnInProgress = false
	next, display := o.sched.Advance()
	return next, display, nil
}

// RequestAIDecision asks the decision engine for the current actor's move.
func (o *Orchestrator) RequestAIDecision(eng *AIDecisionEngine) (*Decision, error) {
	cur := o.Current()
	if cur == nil {
		return nil, ErrInvalidAttacker
	}
	return eng.Decide(cur, o.AvailableTargets())
}

func legalOption(attacker *game.Combatant, opt game.AttackOption) bool {
	for _, o := range attacker.AttackOptions() {
		if o == opt {
			return true
		}
	}
	return false
}

func (o *Orchestrator) findLivingOpponent(attackerTeam game.Team, name string) *game.Combatant {
	for _, t := range o.battle.LivingMembers(attackerTeam.Opposing()) {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// checkBattleEnd reports a winner exactly when one team's living-member
// count reaches zero. A simultaneous double wipe cannot happen here: splash
// only ever hits the opposing team.
func (o *Orchestrator) checkBattleEnd() (game.Team, bool) {
	if len(o.battle.LivingMembers(game.TeamOpponent)) == 0 {
		return game.TeamAlly, true
	}
	if len(o.battle.LivingMembers(game.TeamAlly)) == 0 {
		return game.TeamOpponent, true
	}
	return "", false
}

func endMessage(winner game.Team) string {
	if winner == game.TeamAlly {
		return "Victory for the ally team"
	}
	return "Victory for the opponent team"
}

// summarize renders a turn result into the battle log line shown to
// players.
func summarize(res *AttackResult) string {
	parts := make([]string, 0, len(res.Hits)+1)
	label := "attacks"
	if res.Kind == game.AttackSplash {
		label = "splashes"
	}
	parts = append(parts, fmt.Sprintf("%s %s with %s", res.Attacker, label, res.Gene))
	for _, h := range res.Hits {
		line := fmt.Sprintf("%s takes %d damage (x%.2f)", h.Target, h.Damage, h.Effectiveness)
		if h.TargetDefeated {
			line += " and is defeated"
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "; ")
}
