package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"noteful/internal/config"
	"noteful/internal/database"
	"noteful/internal/database/repositories"
)

type FiberServer struct {
	*fiber.App

	db      database.Service
	log     zerolog.Logger
	metrics *metrics

	notes   repositories.NoteRepository
	folders repositories.FolderRepository
	tags    repositories.TagRepository
}

// Repositories are the stores the handlers work against.
type Repositories struct {
	Notes   repositories.NoteRepository
	Folders repositories.FolderRepository
	Tags    repositories.TagRepository
}

func New(cfg config.Config, db database.Service, log zerolog.Logger) *FiberServer {
	return NewWithRepositories(cfg, db, log, Repositories{
		Notes:   repositories.NewNoteRepository(db.DB()),
		Folders: repositories.NewFolderRepository(db.DB()),
		Tags:    repositories.NewTagRepository(db.DB()),
	})
}

func NewWithRepositories(cfg config.Config, db database.Service, log zerolog.Logger, repos Repositories) *FiberServer {
	server := &FiberServer{
		db:      db,
		log:     log,
		metrics: newMetrics(db),
		notes:   repos.Notes,
		folders: repos.Folders,
		tags:    repos.Tags,
	}
	server.App = fiber.New(fiber.Config{
		ServerHeader:          "noteful",
		AppName:               "noteful",
		ErrorHandler:          server.errorHandler,
		DisableStartupMessage: true,
	})

	server.App.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	server.App.Use(server.accessLog)
	server.App.Use(server.metrics.middleware)
	server.App.Use(recover.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Requested-With",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Location",
		MaxAge:        3600,
	}))
	if cfg.Debug {
		server.App.Use(pprof.New())
	}
	return server
}
