package storage

import (
	"github.com/homeland-bloc/atamne/internal/game"
	"github.com/homeland-bloc/atamne/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database, keeps the schema updated via
// AutoMigrate and seeds the creature roster from the config file.
func OpenAndMigrate(dataSourceName string, creaturesFromConfig []game.Creature) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Creature{}, &game.Battle{}, &game.Combatant{}); err != nil {
		return nil, err
	}
	seedCreatures(db, creaturesFromConfig)
	return db, nil
}

// seedCreatures inserts missing templates and keeps identity rows in sync
// with the config. Stats are never persisted; the unlocked flag is only
// seeded for rows that do not exist yet, because the breeding subsystem
// owns it afterwards.
func seedCreatures(db *gorm.DB, creaturesFromConfig []game.Creature) {
	for _, c := range creaturesFromConfig {
		var existing game.Creature
		err := db.Where("genes = ?", c.Genes).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			row := game.Creature{Name: c.Name, Genes: c.Genes, Unlocked: c.Unlocked}
			if err := db.Create(&row).Error; err != nil {
				logging.Error("failed to seed creature", err, logging.Fields{"name": c.Name})
			}
			continue
		}
		if err != nil {
			logging.Error("failed to check creature seed", err, logging.Fields{"name": c.Name})
			continue
		}
		if existing.Name != c.Name {
			if err := db.Model(&existing).Update("name", c.Name).Error; err != nil {
				logging.Error("failed to rename creature", err, logging.Fields{"name": c.Name})
			}
		}
	}
}
