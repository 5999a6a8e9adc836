package main

import (
	"os"

	"github.com/LachyC123/bloodline-arena-sub002/internal/api"
	"github.com/LachyC123/bloodline-arena-sub002/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the arena configuration file (required). Path may be provided
	// via ARENA_CONFIG env var or defaults to ./arena_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvArenaConfig)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	tun := loadTuningOrExit(cfg.BalanceFile)

	// Allow the DB path to be configured via ARENA_DB. Default to a
	// `data/` directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvArenaDB)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.Enemies)

	sessions := service.NewSessions()
	handler := api.NewArenaHandler(repo, sessions, cfg, tun, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: fights whose action deadline passed are played
	// out server-side so an abandoned tab cannot hold a run hostage.
	startTimeoutScanner(repo, sessions, cfg, tun)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteEnemies, handler.ListEnemies)
		apiRoutes.GET(constants.RoutePublicRuns, handler.ListPublicRuns)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		// Player profile: GET returns stats, POST updates display name
		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)

		protected.POST(constants.RouteRuns, handler.CreateRun)
		protected.GET(constants.RouteActiveRun, handler.GetActiveRun)
		protected.GET(constants.RouteRunByCode, handler.GetRun)
		protected.GET(constants.RouteRunRecords, handler.ListFightRecords)
		protected.POST(constants.RouteRunRetire, handler.RetireRun)

		protected.POST(constants.RouteFightStart, handler.StartFight)
		protected.GET(constants.RouteFightCurrent, handler.GetCurrentFight)
		protected.POST(constants.RouteFightAction, handler.FightAction)
		protected.POST(constants.RouteFightAdvance, handler.FightAdvance)
		protected.POST(constants.RouteFightForfeit, handler.FightForfeit)

		protected.POST(constants.RouteAuthLogout, authHandler.Logout)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	// Start server on configured address
	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
