package service

import (
	"time"

	"github.com/homeland-bloc/atamne/internal/engine"
	"github.com/homeland-bloc/atamne/internal/game"
)

func loadBattle(repo BattleRepo, battleCode string) (*game.Battle, error) {
	b, err := repo.FindBattleByCode(battleCode)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	return b, nil
}

// ProcessTurn resolves the current combatant's chosen attack and persists the
// result. The turn stays held until AdvanceTurn; a concurrent resolution
// attempt gets engine.ErrTurnInProgress and changes nothing.
func ProcessTurn(repo BattleRepo, battleCode string, opt game.AttackOption, targetName string, battleTimeout time.Duration) (*game.Battle, *engine.TurnOutcome, error) {
	unlock := lockBattle(battleCode)
	defer unlock()

	b, err := loadBattle(repo, battleCode)
	if err != nil {
		return nil, nil, err
	}
	orch := engine.NewOrchestrator(b)
	outcome, err := orch.ProcessTurn(opt, targetName)
	if err != nil {
		return nil, nil, err
	}
	if outcome.BattleEnded {
		b.ActionDeadline = time.Time{}
	} else {
		b.ActionDeadline = time.Now().Add(battleTimeout)
	}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, nil, err
	}
	return b, outcome, nil
}

// AdvanceTurn releases the held turn, moves the scheduler to the next actor
// and persists the updated action bars.
func AdvanceTurn(repo BattleRepo, battleCode string) (*game.Battle, *game.Combatant, error) {
	unlock := lockBattle(battleCode)
	defer unlock()

	b, err := loadBattle(repo, battleCode)
	if err != nil {
		return nil, nil, err
	}
	orch := engine.NewOrchestrator(b)
	next, _, err := orch.AdvanceTurn()
	if err != nil {
		return nil, nil, err
	}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, nil, err
	}
	return b, next, nil
}

// EndBattle finishes a battle early as an ally forfeit. The opposing team is
// recorded as the winner so the battle counts as a loss, not an abandonment.
func EndBattle(repo BattleRepo, battleCode string) (*game.Battle, error) {
	unlock := lockBattle(battleCode)
	defer unlock()

	b, err := loadBattle(repo, battleCode)
	if err != nil {
		return nil, err
	}
	if b.Phase == game.PhaseEnded {
		return nil, engine.ErrBattleEnded
	}
	b.Phase = game.PhaseEnded
	b.Winner = game.TeamOpponent
	b.TurnInProgress = false
	b.Message = "Ally team forfeited"
	b.ActionDeadline = time.Time{}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
