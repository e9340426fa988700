package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/tom-gerken/ecommerce-backend/internal/config"
	"github.com/tom-gerken/ecommerce-backend/internal/db"
	httpdelivery "github.com/tom-gerken/ecommerce-backend/internal/delivery/http"
)

type App struct {
	f   *fiber.App
	cfg config.Config
}

func New() *App {
	cfg := config.Load()

	pool, err := db.NewPool(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logrus.Fatalf("db connect failed: %v", err)
	}

	f := fiber.New(fiber.Config{
		AppName: "ecommerce-backend",
	})

	f.Use(recover.New())
	f.Use(logger.New())

	httpdelivery.RegisterRoutes(f, cfg, pool)

	return &App{f: f, cfg: cfg}
}

func (a *App) Run() error {
	logrus.WithField("port", a.cfg.Port).Info("starting api")
	return a.f.Listen(":" + a.cfg.Port)
}
