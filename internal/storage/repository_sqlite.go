package storage

import (
	"strings"
	"time"

	"github.com/homeland-bloc/atamne/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByKey maps gene-combo key -> config definition (stats).
	// The config file is the source of truth for stats; the database only
	// stores identity and the unlocked flag.
	configByKey map[string]game.Creature
}

func NewSQLiteRepository(db *gorm.DB, configCreatures []game.Creature) Repository {
	m := make(map[string]game.Creature, len(configCreatures))
	for _, c := range configCreatures {
		m[game.GenesKey(c.GeneList())] = c
	}
	return &sqliteRepository{db: db, configByKey: m}
}

// applyConfigStats overlays config-defined stats onto persisted rows.
func (r *sqliteRepository) applyConfigStats(creatures []game.Creature) {
	for i := range creatures {
		if conf, ok := r.configByKey[game.GenesKey(creatures[i].GeneList())]; ok {
			creatures[i].HitPoints = conf.HitPoints
			creatures[i].Attack = conf.Attack
			creatures[i].Speed = conf.Speed
		}
	}
}

func (r *sqliteRepository) GetCreatures() ([]game.Creature, error) {
	var creatures []game.Creature
	if err := r.db.Order("id").Find(&creatures).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(creatures)
	return creatures, nil
}

func (r *sqliteRepository) GetCreaturesByNames(names []string) ([]game.Creature, error) {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}
	var creatures []game.Creature
	if err := r.db.Where("lower(name) IN ?", lowered).Find(&creatures).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(creatures)
	// Return in request order so rosters keep their slot assignment, and
	// allow the same template to appear more than once.
	byName := make(map[string]game.Creature, len(creatures))
	for _, c := range creatures {
		byName[strings.ToLower(c.Name)] = c
	}
	out := make([]game.Creature, 0, len(names))
	for _, n := range lowered {
		c, ok := byName[n]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *sqliteRepository) GetUnlockedCreatures() ([]game.Creature, error) {
	var creatures []game.Creature
	if err := r.db.Where("unlocked = ?", true).Order("id").Find(&creatures).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(creatures)
	return creatures, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) FindBattleByCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Combatants", func(db *gorm.DB) *gorm.DB {
		return db.Order("slot_index")
	}).Where("battle_code = ?", code).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) GetRecentBattles(limit int) ([]game.Battle, error) {
	if limit <= 0 {
		limit = 10
	}
	var battles []game.Battle
	if err := r.db.Preload("Combatants").
		Where("phase = ?", game.PhaseEnded).
		Order("updated_at desc").
		Limit(limit).
		Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) GetBattleStats() (*BattleStats, error) {
	stats := &BattleStats{}
	count := func(dst *int, q *gorm.DB) error {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		*dst = int(n)
		return nil
	}
	base := r.db.Model(&game.Battle{}).Where("phase = ?", game.PhaseEnded)
	if err := count(&stats.BattlesPlayed, base.Session(&gorm.Session{})); err != nil {
		return nil, err
	}
	if err := count(&stats.AllyWins, r.db.Model(&game.Battle{}).Where("phase = ? AND winner = ?", game.PhaseEnded, game.TeamAlly)); err != nil {
		return nil, err
	}
	if err := count(&stats.OpponentWins, r.db.Model(&game.Battle{}).Where("phase = ? AND winner = ?", game.PhaseEnded, game.TeamOpponent)); err != nil {
		return nil, err
	}
	if err := count(&stats.Abandoned, r.db.Model(&game.Battle{}).Where("phase = ? AND winner = ?", game.PhaseEnded, "")); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	if err := r.db.Preload("Combatants").
		Where("phase = ? AND action_deadline != ? AND action_deadline <= ?", game.PhaseBattle, time.Time{}, now).
		Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}
