package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/handler"
	"github.com/labelforge/api/internal/middleware"
	"github.com/labelforge/api/internal/model"
	"github.com/labelforge/api/internal/printer"
	"github.com/labelforge/api/internal/render"
	"github.com/labelforge/api/internal/service"
	"github.com/labelforge/api/pkg/response"
)

const serviceName = "labelforge-api"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client (rate limiting + job audit records)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize validator
	validate := validator.New()

	// Font source: embedded Go Regular unless a TTF path is configured
	fonts, err := render.LoadFont(cfg.Render.FontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	// Rendering pipeline
	resolver := render.NewResolver(cfg.Printer)
	layoutEngine := render.NewLayoutEngine(fonts, cfg.Layout)
	renderer := render.NewRenderer(fonts, cfg.Render, cfg.Layout)

	// Printer dispatch via CUPS
	dispatcher := printer.NewCUPSDispatcher(cfg.Printer)
	capabilities := printer.NewCapabilityProvider(cfg.Printer, dispatcher)

	// Services
	jobStore := service.NewRedisJobStore(redisClient)
	printService := service.NewPrintService(resolver, layoutEngine, renderer, dispatcher, jobStore)

	// Handlers
	printHandler := handler.NewPrintHandler(printService, validate)
	capabilitiesHandler := handler.NewCapabilitiesHandler(capabilities)
	jobsHandler := handler.NewJobsHandler(printService)

	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	isDebug := strings.EqualFold(cfg.Server.LogLevel, "debug")
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if isDebug {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${body}\n"
		log.Println("Debug logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":   serviceName,
			"timestamp": time.Now().Unix(),
		})
	})

	// Health check: liveness only, never probes the physical printer
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(model.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Service:   serviceName,
		})
	})

	// API routes
	api := app.Group("/api/v1")
	api.Post("/print", rateLimiter.PrintLimit(cfg.RateLimit.PrintPerMin), printHandler.Print)
	api.Get("/capabilities", capabilitiesHandler.Get)
	api.Get("/jobs/:jobId", jobsHandler.Get)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s (printer=%s)", addr, cfg.Printer.Name)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return response.Error(c, code, response.CodeServiceError, message, nil)
}
