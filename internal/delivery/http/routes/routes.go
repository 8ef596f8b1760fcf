package routes

import (
	"log"

	"jobquest/internal/config"
	"jobquest/internal/database"
	"jobquest/internal/delivery/http/handler"
	v1 "jobquest/internal/delivery/http/routes/v1"
	"jobquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, cache usecase.SearchCache, logger *log.Logger) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, cache, logger)
}
