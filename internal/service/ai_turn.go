package service

import (
	"math/rand"
	"time"

	"github.com/homeland-bloc/atamne/internal/engine"
	"github.com/homeland-bloc/atamne/internal/game"
)

// AITurnResult bundles everything one opponent turn produced.
type AITurnResult struct {
	Battle   *game.Battle
	Decision *engine.Decision
	Outcome  *engine.TurnOutcome
	Next     *game.Combatant
}

// RunAITurn decides, resolves and advances a single opponent turn under one
// battle lock, so the player can never interleave an action inside it. It is
// the callback the task registry fires after the configured thinking delay.
func RunAITurn(repo BattleRepo, battleCode string, rng *rand.Rand, battleTimeout time.Duration) (*AITurnResult, error) {
	unlock := lockBattle(battleCode)
	defer unlock()

	b, err := loadBattle(repo, battleCode)
	if err != nil {
		return nil, err
	}
	orch := engine.NewOrchestrator(b)
	cur := orch.Current()
	if cur == nil || cur.Team != game.TeamOpponent {
		return nil, engine.ErrInvalidAttacker
	}

	eng := engine.NewAIDecisionEngine(engine.Difficulty(b.Difficulty), rng)
	dec, err := orch.RequestAIDecision(eng)
	if err != nil {
		return nil, err
	}
	targetName := ""
	if dec.Target != nil {
		targetName = dec.Target.Name
	}
	outcome, err := orch.ProcessTurn(dec.Attack, targetName)
	if err != nil {
		return nil, err
	}

	res := &AITurnResult{Battle: b, Decision: dec, Outcome: outcome}
	if outcome.BattleEnded {
		b.ActionDeadline = time.Time{}
	} else {
		next, _, err := orch.AdvanceTurn()
		if err != nil {
			return nil, err
		}
		res.Next = next
		b.ActionDeadline = time.Now().Add(battleTimeout)
	}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return res, nil
}
