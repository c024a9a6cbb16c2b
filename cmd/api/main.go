package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"swapr-backend/internal/config"
	"swapr-backend/internal/handler"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/repository"
	"swapr-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = nil
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MinIO")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      "Swapr API",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	registerRoutes(app, handlers, services)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("Server stopped")
		}
	}()
	logrus.WithField("port", cfg.Port).Info("Swapr API started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("Forced shutdown")
	}
}

func registerRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	api := app.Group("/api")

	authRequired := middleware.AuthRequired(services.Auth)
	optionalAuth := middleware.OptionalAuth(services.Auth)
	adminRequired := middleware.AdminRequired()

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Get("/me", authRequired, h.Auth.Me)
	auth.Post("/logout", authRequired, h.Auth.Logout)

	users := api.Group("/users")
	users.Get("/", h.User.List)
	users.Put("/profile", authRequired, h.User.UpdateProfile)
	users.Put("/profile/photo", authRequired, h.User.UploadPhoto)
	users.Get("/admin/all", authRequired, adminRequired, h.User.AdminList)
	users.Put("/admin/:id", authRequired, adminRequired, h.User.AdminUpdate)
	users.Delete("/admin/:id", authRequired, adminRequired, h.User.AdminDelete)
	users.Get("/:id", optionalAuth, h.User.GetByID)

	swaps := api.Group("/swaps", authRequired)
	swaps.Get("/", h.Swap.List)
	swaps.Post("/", h.Swap.Create)
	swaps.Get("/admin/all", adminRequired, h.Swap.AdminListAll)
	swaps.Get("/:id", h.Swap.Get)
	swaps.Put("/:id", h.Swap.Update)
	swaps.Delete("/:id", h.Swap.Delete)

	reviews := api.Group("/reviews")
	reviews.Get("/user/:userId", h.Review.ListForUser)
	reviews.Post("/", authRequired, h.Review.Create)
	reviews.Get("/given", authRequired, h.Review.ListGiven)

	notifications := api.Group("/notifications", authRequired)
	notifications.Get("/", h.Notification.List)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
	notifications.Post("/admin/announcement", adminRequired, h.Notification.Broadcast)
}
