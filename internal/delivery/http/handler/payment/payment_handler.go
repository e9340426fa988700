package payment

import (
	"github.com/gofiber/fiber/v2"

	payuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/payment"
)

type Handler struct {
	uc *payuc.Usecase
}

func New(uc *payuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) ListForOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	items, state, err := h.uc.ListByOrder(c.Context(), orderID)
	if err != nil {
		switch err {
		case payuc.ErrInvalidInput:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case payuc.ErrOrderMissing:
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
	}

	return c.JSON(fiber.Map{
		"items": items,
		"order": state,
	})
}
