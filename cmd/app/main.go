package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/safatanc/promotion-core/injector"
	"github.com/safatanc/promotion-core/internal/app/pkg"
	"github.com/safatanc/promotion-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

func main() {
	config := infrastructures.LoadConfig()

	app, err := injector.InitializeApplication(config)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	router := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 60,
		WriteTimeout:          time.Second * 60,
		IdleTimeout:           time.Second * 60,
		ErrorHandler:          pkg.ErrorHandler,
		DisableStartupMessage: true,
	})

	router.Use(recover.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Location, X-Request-ID",
		MaxAge:        300,
	}))

	app.RegisterRoutes(router)

	go func() {
		app.Logger.WithField("port", config.APP_PORT).Info("promotion-core listening")
		if err := router.Listen(":" + config.APP_PORT); err != nil {
			app.Logger.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("shutting down")
	if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
		app.Logger.WithError(err).Error("graceful shutdown failed")
	}
}
