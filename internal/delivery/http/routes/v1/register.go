package v1

import (
	"log"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/cache"
	pgrepo "job-board/internal/infrastructure/persistence/postgres"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/pkg/jwt"
	"job-board/internal/usecase"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Storage storage.ResumeStorage
	Hub     *ws.Hub
	Logger  *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.Secret, deps.Config.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := pgrepo.NewUserRepository(deps.DB)
	jobRepo := pgrepo.NewJobRepository(deps.DB)
	appRepo := pgrepo.NewApplicationRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	jobUC := usecase.NewJobUsecase(jobRepo, deps.Cache, deps.Logger)
	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo, deps.Storage, deps.Cache)

	authHandler := handler.NewAuthHandler(authUC)
	jobHandler := handler.NewJobHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)

	// Public endpoints.
	r.Post("/choose-role", authHandler.ChooseRole)
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Get("/jobs", jobHandler.List)

	if deps.Hub != nil {
		wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
		r.Get("/ws/applications", wsHandler.HandleApplicationsWS)
	}

	// Everything below requires a valid bearer token.
	protected := r.Group("", authMw.Middleware())

	protected.Get("/dashboard", authHandler.Dashboard)

	protected.Post("/post-job", jobHandler.Post, middleware.RequireRole(user.RoleRecruiter))
	protected.Delete("/delete-job/:id", jobHandler.Delete)
	protected.Patch("/update-job-status/:jobId", jobHandler.UpdateStatus)

	protected.Post("/apply/:jobId", appHandler.Apply, middleware.RequireRole(user.RoleCandidate))
	protected.Post("/update-application/:appId", appHandler.UpdateStatus, middleware.RequireRole(user.RoleRecruiter))
	protected.Get("/my-applications", appHandler.MyApplications, middleware.RequireRole(user.RoleCandidate))
}
