package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/wichananm65/user-registration/internal/config"
	"github.com/wichananm65/user-registration/internal/database"
	"github.com/wichananm65/user-registration/internal/user"
	"github.com/wichananm65/user-registration/web"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// storage must be ready before any request is served
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
			return
		}
		log.Println("database connection closed")
	}()
	log.Printf("connected to %s database", cfg.DBDriver)

	if err := database.InitSchema(ctx, db); err != nil {
		return err
	}
	log.Println("users table ready")

	userHandler := user.NewHandler(user.NewService(user.NewSQLRepository(db)))
	app := newApp(cfg, userHandler, db)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server running at http://localhost%s", cfg.Addr())
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newApp(cfg config.Config, userHandler *user.Handler, db pinger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())
	setupCORS(app, cfg.AllowOrigins)

	app.Get("/health", healthCheck(db))
	userHandler.RegisterRoutes(app)

	// landing page and its assets; mounted after the API so routes win
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	return app
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func healthCheck(db pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Printf("health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
