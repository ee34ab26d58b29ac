package app

import (
	"fmt"
	"strings"

	"taskmatch/internal/config"
	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/delivery/http/routes"
	v1 "taskmatch/internal/delivery/http/routes/v1"
	"taskmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerHealth(f, c)
	routes.Register(f, v1.Deps{
		Cfg:    c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Queue:  c.Pipeline,
		Mailer: c.Mailer,
		Logger: c.Logger,
	})

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return New(container), container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerHealth(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Get("/health", func(fc fiber.Ctx) error {
		status := fiber.Map{"database": "ok", "cache": "ok"}
		code := fiber.StatusOK

		if err := c.DB.Ping(fc.Context()); err != nil {
			status["database"] = "down"
			code = fiber.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(fc.Context()); err != nil {
			status["cache"] = "down"
		}
		return response.Success(fc, code, response.MessageOK, status)
	})
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
