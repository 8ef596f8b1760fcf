package v1

import (
	"log"

	"jobquest/internal/config"
	"jobquest/internal/database"
	"jobquest/internal/delivery/http/handler"
	"jobquest/internal/delivery/http/middleware"
	"jobquest/internal/infrastructure/jsearch"
	"jobquest/internal/infrastructure/persistence/postgres"
	"jobquest/internal/pkg/jwt"
	"jobquest/internal/usecase"
	"jobquest/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.SearchCache, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(db)
	favRepo := postgres.NewFavoriteRepository(db)

	searchClient := jsearch.NewClient(
		"https://"+cfg.Search.RapidAPIHost,
		cfg.Search.RapidAPIKey,
		cfg.Search.RapidAPIHost,
		logger,
	)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, favRepo)
	searchUC := usecase.NewSearchUsecase(searchClient, cache, logger)
	favoritesUC := usecase.NewFavoritesUsecase(userRepo, favRepo, logger)

	handler.NewAuthHandler(authUC).RegisterRoutes(r.Group("/auth"))
	handler.NewJobsHandler(searchUC).RegisterRoutes(r.Group("/jobs"))

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)
	wsHandler := ws.NewHandler(hub, jwtSvc, logger)
	r.Get("/ws/favorites", wsHandler.HandleFavoritesWS)

	protected := r.Group("", authMw.Middleware())
	handler.NewFavoritesHandler(favoritesUC).RegisterRoutes(protected.Group("/favorites"))
	handler.NewUserHandler(userUC).RegisterRoutes(protected.Group("/users"))
}
