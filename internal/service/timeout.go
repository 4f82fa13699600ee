package service

import (
	"time"

	"github.com/homeland-bloc/atamne/internal/game"
	"github.com/homeland-bloc/atamne/internal/logging"
)

// HandleTimedOutBattle ends a battle whose action deadline lapsed. The
// battle is re-loaded and re-checked under the battle lock, so a turn
// resolved after the scan listed it refreshes the deadline and wins over the
// stale snapshot. No winner is recorded; the stats endpoint reports these
// battles as abandoned.
func HandleTimedOutBattle(repo BattleRepo, b *game.Battle) error {
	unlock := lockBattle(b.BattleCode)
	defer unlock()

	cur, err := loadBattle(repo, b.BattleCode)
	if err != nil {
		return err
	}
	if cur.Phase != game.PhaseBattle {
		return nil
	}
	if cur.ActionDeadline.IsZero() || cur.ActionDeadline.After(time.Now()) {
		return nil
	}
	cur.Phase = game.PhaseEnded
	cur.Winner = ""
	cur.TurnInProgress = false
	cur.Message = "Battle abandoned due to inactivity"
	cur.ActionDeadline = time.Time{}
	logging.Info("battle abandoned due to inactivity", logging.Fields{"battle_code": cur.BattleCode})
	return repo.UpdateBattle(cur)
}
