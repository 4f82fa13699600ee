package main

import (
	"github.com/homeland-bloc/atamne/internal/config"
	"github.com/homeland-bloc/atamne/internal/game"
	"github.com/homeland-bloc/atamne/internal/logging"
	"github.com/homeland-bloc/atamne/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid atamne configuration", err, logging.Fields{"config_path": path, "hint": "create an atamne_config.json with a 'creature_list' array of creature objects (name,genes,hit_points,attack,speed,unlocked) and optional keys: server.address, ai.difficulty, ai.thinking_delay_ms, battle_timeout_seconds"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, creatures []game.Creature) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, creatures)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, creatures)
}
