package service

import (
	"math/rand"
	"time"

	"github.com/homeland-bloc/atamne/internal/dedupe"
	"github.com/homeland-bloc/atamne/internal/engine"
	"github.com/homeland-bloc/atamne/internal/game"
)

// SetupBattle performs all server-side initialization when creating a battle.
// The ally roster comes from the request by template name; the opposing
// roster is drawn at random from the unlocked templates, with repeats
// allowed. The created battle is persisted and returned ready for its first
// turn.
func SetupBattle(repo BattleRepo, battleCode string, allyNames []string, difficulty engine.Difficulty, rng *rand.Rand, battleTimeout time.Duration) (*game.Battle, error) {
	if len(allyNames) != 3 {
		return nil, engine.ErrInvalidRosterSize
	}
	allies, err := repo.GetCreaturesByNames(allyNames)
	if err != nil {
		return nil, ErrUnknownCreature
	}
	opponents, err := randomOpponents(repo, rng)
	if err != nil {
		return nil, err
	}

	b, err := engine.Setup(battleCode, allies, opponents, difficulty)
	if err != nil {
		return nil, err
	}
	b.ActionDeadline = time.Now().Add(battleTimeout)
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// randomOpponents picks three unlocked templates uniformly, with
// replacement. Concurrent battle creations share one roster load through the
// singleflight group.
func randomOpponents(repo BattleRepo, rng *rand.Rand) ([]game.Creature, error) {
	v, err, _ := dedupe.RosterGroup.Do("unlocked", func() (interface{}, error) {
		return repo.GetUnlockedCreatures()
	})
	if err != nil {
		return nil, err
	}
	pool := v.([]game.Creature)
	if len(pool) == 0 {
		return nil, ErrNoUnlocked
	}
	out := make([]game.Creature, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, pool[rng.Intn(len(pool))])
	}
	return out, nil
}
