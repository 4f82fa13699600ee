package service

import (
	"errors"

	"github.com/homeland-bloc/atamne/internal/game"
)

// BattleRepo is the narrow repository surface the battle services need.
// storage.Repository satisfies it; tests provide small mocks.
type BattleRepo interface {
	GetCreaturesByNames(names []string) ([]game.Creature, error)
	GetUnlockedCreatures() ([]game.Creature, error)
	CreateBattle(b *game.Battle) error
	FindBattleByCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
}

var (
	ErrBattleNotFound  = errors.New("battle not found")
	ErrUnknownCreature = errors.New("unknown creature in roster")
	ErrNoUnlocked      = errors.New("no unlocked creatures to build an opponent roster")
)
