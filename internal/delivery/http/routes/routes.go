package routes

import (
	"log"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps bundles everything route registration needs to wire handlers.
type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Storage storage.ResumeStorage
	Hub     *ws.Hub
	Logger  *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, health: handler.NewHealthHandler()}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
