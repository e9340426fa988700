package product

import (
	"github.com/gofiber/fiber/v2"

	productuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/product"
)

type Handler struct {
	uc *productuc.Usecase
}

func New(uc *productuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in productuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var in productuc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) SetInventory(c *fiber.Ctx) error {
	var in productuc.SetInventoryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.SetInventory(c.Context(), c.Params("id"), c.Params("locationId"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) ListInventory(c *fiber.Ctx) error {
	out, err := h.uc.ListInventory(c.Context(), c.Query("locationId"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func mapErr(err error) error {
	switch err {
	case productuc.ErrInvalidInput:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case productuc.ErrProductMissing:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
