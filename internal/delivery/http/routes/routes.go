package routes

import (
	"portfolio-api/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	portfolio *handler.PortfolioHandler
	contact   *handler.ContactHandler
	showcase  *handler.ShowcaseHandler
}

func NewRegistry(
	health *handler.HealthHandler,
	portfolio *handler.PortfolioHandler,
	contact *handler.ContactHandler,
	showcase *handler.ShowcaseHandler,
) *Registry {
	return &Registry{health: health, portfolio: portfolio, contact: contact, showcase: showcase}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerAPI(api fiber.Router) {
	if r.portfolio != nil {
		r.portfolio.RegisterRoutes(api)
	}
	if r.contact != nil {
		r.contact.RegisterRoutes(api)
	}
	if r.showcase != nil {
		r.showcase.RegisterRoutes(api)
	}
}
