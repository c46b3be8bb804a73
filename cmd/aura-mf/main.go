package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/THMSCMPG/AURA-MF/internal/api/http"
	"github.com/THMSCMPG/AURA-MF/internal/config"
	"github.com/THMSCMPG/AURA-MF/internal/dashboard"
	"github.com/THMSCMPG/AURA-MF/internal/mailer"
	"github.com/THMSCMPG/AURA-MF/internal/panel"
	"github.com/THMSCMPG/AURA-MF/internal/scheduler"
	"github.com/THMSCMPG/AURA-MF/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// In-memory run store with configured retention.
	runStore := store.NewMemoryStore(cfg.StoreMaxRuns, cfg.StoreMaxAge)

	// Core simulation service.
	service := panel.NewService(runStore, cfg.SolverMaxSteps)

	// Mocked dashboard telemetry, advanced by a background tick.
	dash := dashboard.NewState(cfg.DashboardSeed)
	sched := scheduler.New(dash, cfg.DashboardTick)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Contact-mail delivery.
	mail, err := mailer.New(mailer.Config{
		Host:      cfg.MailHost,
		Port:      cfg.MailPort,
		Username:  cfg.MailUsername,
		Password:  cfg.MailPassword,
		From:      cfg.MailUsername,
		Recipient: cfg.ContactRecipient,
	})
	if err != nil {
		log.Fatalf("failed to configure mailer: %v", err)
	}
	if !mail.Configured() {
		log.Println("WARN: mail credentials missing; contact endpoint will report failure")
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "aura-mf",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// API routes.
	httpapi.RegisterRoutes(app, service, dash, mail)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
