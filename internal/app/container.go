package app

import (
	"context"
	"log"
	"os"
	"time"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/database/migration"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/ws"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Storage storage.ResumeStorage
	Hub     *ws.Hub
	Logger  *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	st, err := storage.NewMinioStorage(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		Storage: st,
		Hub:     hub,
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
