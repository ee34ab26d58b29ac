package routes

import (
	v1 "taskmatch/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, d v1.Deps) {
	if app == nil {
		return
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), d)
}
