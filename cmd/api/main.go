package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ouvidoria-ativa/internal/cache"
	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/handler"
	"ouvidoria-ativa/internal/middleware"
	"ouvidoria-ativa/internal/repository"
	"ouvidoria-ativa/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (running uncached)", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	repos := repository.NewRepositories(db)
	store := cache.New(redisClient, cfg.CachePrefix)
	services := service.NewServices(repos, store, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	public := v1.Group("/public", middleware.ActorProvider(cfg.JWTSecret))
	public.Post("/manifestations", h.Public.Create)
	public.Get("/manifestations/:protocol", h.Public.Get)
	public.Get("/manifestations/:protocol/messages", h.Public.ListMessages)
	public.Post("/manifestations/:protocol/messages", h.Public.SendMessage)
	public.Post("/manifestations/:protocol/finalize", h.Public.Finalize)
	public.Post("/manifestations/:protocol/satisfaction", h.Public.RecordSatisfaction)
	public.Get("/dashboard", h.Dashboard.GetStats)

	staff := v1.Group("", middleware.ActorRequired(cfg.JWTSecret), middleware.RequireStaff())

	manifestations := staff.Group("/manifestations")
	manifestations.Get("/", h.Manifestation.List)
	manifestations.Get("/departments", h.Manifestation.Departments)
	manifestations.Get("/:id", h.Manifestation.Get)
	manifestations.Patch("/:id/status", h.Manifestation.UpdateStatus)
	manifestations.Post("/:id/response", h.Manifestation.RecordResponse)
	manifestations.Post("/:id/finalize", h.Manifestation.Finalize)
	manifestations.Get("/:id/messages", h.Message.List)
	manifestations.Post("/:id/messages", h.Message.Send)
}
