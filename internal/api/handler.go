package api

import (
	"time"

	"github.com/homeland-bloc/atamne/internal/service"
	"github.com/homeland-bloc/atamne/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo              storage.Repository
	defaultDifficulty string
	thinkingDelay     time.Duration
	battleTimeout     time.Duration
	tasks             *service.TaskRegistry
}

// NewBattleHandler creates a handler with the given repository and the
// configured AI/timeout settings.
func NewBattleHandler(repo storage.Repository, defaultDifficulty string, thinkingDelay, battleTimeout time.Duration, tasks *service.TaskRegistry) *BattleHandler {
	return &BattleHandler{
		repo:              repo,
		defaultDifficulty: defaultDifficulty,
		thinkingDelay:     thinkingDelay,
		battleTimeout:     battleTimeout,
		tasks:             tasks,
	}
}
