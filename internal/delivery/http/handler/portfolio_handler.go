package handler

import (
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PortfolioHandler struct {
	uc usecase.PortfolioUsecase
}

func NewPortfolioHandler(uc usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Profile)
	r.Get("/experiences", h.Experiences)
	r.Get("/education", h.Education)
	r.Get("/projects", h.Projects)
	r.Get("/skills", h.Skills)
}

// Profile responds with {} rather than 404 when nothing is stored.
func (h *PortfolioHandler) Profile(c fiber.Ctx) error {
	p, found, err := h.uc.GetProfile(c.Context())
	if err != nil {
		return appError(err)
	}
	if !found {
		return response.JSON(c, fiber.StatusOK, fiber.Map{})
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *PortfolioHandler) Experiences(c fiber.Ctx) error {
	items, err := h.uc.ListExperiences(c.Context())
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *PortfolioHandler) Education(c fiber.Ctx) error {
	items, err := h.uc.ListEducation(c.Context())
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *PortfolioHandler) Projects(c fiber.Ctx) error {
	items, err := h.uc.ListProjects(c.Context())
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *PortfolioHandler) Skills(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}
