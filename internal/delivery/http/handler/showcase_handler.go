package handler

import (
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ShowcaseHandler struct {
	uc usecase.ShowcaseUsecase
}

func NewShowcaseHandler(uc usecase.ShowcaseUsecase) *ShowcaseHandler {
	return &ShowcaseHandler{uc: uc}
}

func (h *ShowcaseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/showcase", h.Get)
}

func (h *ShowcaseHandler) Get(c fiber.Ctx) error {
	v, err := h.uc.Build(c.Context())
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, v)
}
