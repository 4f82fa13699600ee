package main

import (
	"time"

	"github.com/homeland-bloc/atamne/internal/logging"
	"github.com/homeland-bloc/atamne/internal/service"
	"github.com/homeland-bloc/atamne/internal/storage"
)

// startTimeoutScanner periodically abandons battles whose action deadline
// passed and delegates handling to service.HandleTimedOutBattle.
func startTimeoutScanner(repo storage.Repository, tasks *service.TaskRegistry) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			battles, err := repo.FindTimedOutBattles(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			// process each battle sequentially (keeps DB safe under SQLite)
			for i := range battles {
				b := &battles[i]
				tasks.Cancel(b.BattleCode)
				if err := service.HandleTimedOutBattle(repo, b); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{"battle_code": b.BattleCode})
				}
			}
		}
	}()
}
