package handler

import (
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/contact", h.Submit)
	r.Post("/contact/draft", h.Draft)
}

func (h *ContactHandler) Submit(c fiber.Ctx) error {
	in, err := bindContact(c)
	if err != nil {
		return err
	}
	if _, err := h.uc.Submit(c.Context(), in); err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, response.Success{Success: true})
}

// Draft returns the mailto link for a contact request without storing it.
func (h *ContactHandler) Draft(c fiber.Ctx) error {
	in, err := bindContact(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Draft(c.Context(), in)
	if err != nil {
		return appError(err)
	}
	return response.JSON(c, fiber.StatusOK, d)
}

func bindContact(c fiber.Ctx) (usecase.ContactInput, error) {
	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.ContactInput{}, middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidInput, err)
	}
	return usecase.ContactInput{Name: req.Name, Email: req.Email, Message: req.Message}, nil
}
