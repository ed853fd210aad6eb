package app

import (
	"context"
	"fmt"
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/content"
	"portfolio-api/internal/database/migration"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/usecase"
)

// Container owns the process-wide dependencies shared by the server and
// portfolioctl.
type Container struct {
	Config  config.Config
	DB      *dbpostgres.Pool
	Content content.Document
	Logger  *log.Logger

	Portfolio repository.PortfolioRepository
	Contacts  *repository.PostgresContactRepository
	Store     *repository.PostgresContentStore

	Migrator migration.Runner
	Seeder   *seeder.Seeder

	PortfolioUsecase *usecase.Portfolio
	ContactUsecase   *usecase.Contact
	ShowcaseUsecase  *usecase.Showcase
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	doc, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger := log.Default()
	portfolioRepo := repository.NewPostgresPortfolioRepository(db)
	contactRepo := repository.NewPostgresContactRepository(db)
	store := repository.NewPostgresContentStore(db)

	return &Container{
		Config:  cfg,
		DB:      db,
		Content: doc,
		Logger:  logger,

		Portfolio: portfolioRepo,
		Contacts:  contactRepo,
		Store:     store,

		Migrator: migration.Runner{Logger: logger},
		Seeder:   seeder.New(store, doc, logger),

		PortfolioUsecase: usecase.NewPortfolioUsecase(portfolioRepo, logger),
		ContactUsecase:   usecase.NewContactUsecase(contactRepo, portfolioRepo, cfg.Contact.Email, doc.Profile.Email, logger),
		ShowcaseUsecase:  usecase.NewShowcaseUsecase(portfolioRepo, doc, logger),
	}, nil
}

// Migrate applies pending schema migrations.
func (c *Container) Migrate(ctx context.Context) error {
	return c.Migrator.Run(ctx, c.DB.SQLDB())
}

// Seed runs the seed routine in the given mode.
func (c *Container) Seed(ctx context.Context, mode config.SeedMode) (seeder.Result, error) {
	return c.Seeder.Run(ctx, mode)
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
