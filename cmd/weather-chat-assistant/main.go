package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/mayankagarwal1234/Weather-chat-assistance/internal/api/http"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/assistant"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/chat"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/config"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/resolver"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/scheduler"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/store"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory session registry with idle retention.
	sessions := store.NewSessionStore(cfg.SessionMaxIdle)

	// Retention sweeper for idle sessions.
	sched := scheduler.New(sessions, cfg.PruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Upstream clients and the per-turn pipeline.
	weatherClient := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	assistantClient := assistant.NewClient(httpClient, cfg.GeminiAPIKey)
	orchestrator := chat.NewOrchestrator(weatherClient, assistantClient, resolver.Resolve)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-chat-assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
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

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-chat-assistant",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Sessions:        sessions,
		Orchestrator:    orchestrator,
		Assistant:       assistantClient,
		DefaultCity:     cfg.DefaultCity,
		DefaultLanguage: cfg.DefaultLanguage,
	})

	// Start server with graceful shutdown
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
