package storage

import (
	"time"

	"github.com/homeland-bloc/atamne/internal/game"
)

// BattleStats aggregates finished battles for the stats endpoint.
type BattleStats struct {
	BattlesPlayed int `json:"battles_played"`
	AllyWins      int `json:"ally_wins"`
	OpponentWins  int `json:"opponent_wins"`
	Abandoned     int `json:"abandoned"`
}

type Repository interface {
	GetCreatures() ([]game.Creature, error)
	GetCreaturesByNames(names []string) ([]game.Creature, error)
	// GetUnlockedCreatures returns the templates the breeding subsystem
	// has marked unlocked; the battle core never mutates the flag.
	GetUnlockedCreatures() ([]game.Creature, error)

	CreateBattle(b *game.Battle) error
	FindBattleByCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// GetRecentBattles lists finished battles, newest first.
	GetRecentBattles(limit int) ([]game.Battle, error)
	GetBattleStats() (*BattleStats, error)
	// FindTimedOutBattles returns in-progress battles whose action
	// deadline is at or before now; the caller decides how to resolve
	// them (typically marking them abandoned).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
