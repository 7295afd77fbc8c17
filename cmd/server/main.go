package main

import (
	"strings"

	"github.com/benbeisheim/chess3d-backend/internal/config"
	"github.com/benbeisheim/chess3d-backend/internal/controller"
	"github.com/benbeisheim/chess3d-backend/internal/dao"
	"github.com/benbeisheim/chess3d-backend/internal/db"
	"github.com/benbeisheim/chess3d-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalw("failed to read configuration", "error", err)
	}
	if level, ok := logLevels[strings.ToLower(cfg.Log.Level)]; ok {
		log.SetLevel(level)
	}

	archive := dao.NewMemoryGameRepository()
	if cfg.Database.Address != "" {
		dbClient, err := db.NewDbClient(cfg)
		if err != nil {
			log.Fatalw("failed to connect to mongo", "error", err)
		}
		defer dbClient.Close()
		archive = dao.NewGameRepository(dbClient)
		log.Infow("archiving games to mongo", "database", cfg.Database.DatabaseName, "collection", cfg.Database.Collection)
	} else {
		log.Warn("MONGO_ADDRESS not set, finished games are kept in memory")
	}

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager)

	app := fiber.New(fiber.Config{Immutable: true})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	controller.Register(app, gameService, strings.Split(cfg.Server.Origins, ","))

	log.Infow("listening", "address", cfg.ListenAddress())
	if err := app.Listen(cfg.ListenAddress()); err != nil {
		log.Errorw("server stopped", "error", err)
	}
}
