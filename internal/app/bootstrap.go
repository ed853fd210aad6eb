package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	DB        handler.Pinger
	Portfolio usecase.PortfolioUsecase
	Contact   usecase.ContactUsecase
	Showcase  usecase.ShowcaseUsecase
	Logger    *log.Logger
}

// NewHTTP builds the fiber app: access log outermost, then CORS, then error
// normalisation around the routes.
func NewHTTP(cfg config.Config, deps Deps) *fiber.App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, cfg, deps.Logger)

	routes.NewRegistry(
		handler.NewHealthHandler(deps.DB),
		handler.NewPortfolioHandler(deps.Portfolio),
		handler.NewContactHandler(deps.Contact),
		handler.NewShowcaseHandler(deps.Showcase),
	).Register(f)

	return f
}

// Bootstrap connects, migrates, seeds per cfg.Seed.Mode and returns the
// ready-to-listen app. Any failure aborts startup.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second+cfg.Database.ConnectTimeout)
	defer cancel()

	c, err := NewContainer(connectCtx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := c.Close

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	seedCtx, seedCancel := context.WithTimeout(ctx, time.Minute)
	defer seedCancel()
	if _, err := c.Seed(seedCtx, cfg.Seed.Mode); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	f := NewHTTP(cfg, Deps{
		DB:        c.DB,
		Portfolio: c.PortfolioUsecase,
		Contact:   c.ContactUsecase,
		Showcase:  c.ShowcaseUsecase,
		Logger:    c.Logger,
	})
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderContentType, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
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
