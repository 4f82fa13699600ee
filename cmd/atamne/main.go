package main

import (
	"os"

	"github.com/homeland-bloc/atamne/internal/api"
	"github.com/homeland-bloc/atamne/internal/constants"
	"github.com/homeland-bloc/atamne/internal/logging"
	"github.com/homeland-bloc/atamne/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the creature configuration file (required). Path may be provided
	// via ATAMNE_CONFIG or defaults to ./atamne_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via ATAMNE_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	repo := createRepositoryOrExit(dbPath, cfg.Creatures)

	tasks := service.NewTaskRegistry()
	handler := api.NewBattleHandler(repo, cfg.DefaultDifficulty, cfg.ThinkingDelay, cfg.BattleTimeout, tasks)

	startTimeoutScanner(repo, tasks)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteCreatures, handler.GetCreatures)
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByCode, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattleTargets, handler.GetTargets)
		apiRoutes.POST(constants.RouteBattleTurn, handler.SubmitTurn)
		apiRoutes.POST(constants.RouteBattleAdvance, handler.AdvanceTurn)
		apiRoutes.POST(constants.RouteBattleAITurn, handler.AITurn)
		apiRoutes.POST(constants.RouteBattleEnd, handler.EndBattle)
		apiRoutes.GET(constants.RouteRecentBattles, handler.GetRecentBattles)
		apiRoutes.GET(constants.RouteBattleStats, handler.GetBattleStats)
		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
