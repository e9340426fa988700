package order

import (
	"github.com/gofiber/fiber/v2"

	orderuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/order"
)

type Handler struct {
	uc *orderuc.Usecase
}

func New(uc *orderuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in orderuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Create(c.Context(), in)
	return writeOne(c, out, err, fiber.StatusCreated)
}

func (h *Handler) List(c *fiber.Ctx) error {
	in := orderuc.ListInput{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("locationId"); v != "" {
		in.LocationID = &v
	}
	if v := c.Query("customerId"); v != "" {
		in.CustomerID = &v
	}

	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var in orderuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	actorID, _ := c.Locals("user_id").(string)
	out, err := h.uc.ApplyStatusChange(c.Context(), c.Params("id"), in, actorID)
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) UpdateInfo(c *fiber.Ctx) error {
	var in orderuc.UpdateInfoInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.UpdateInfo(c.Context(), c.Params("id"), in)
	return writeOne(c, out, err, fiber.StatusOK)
}

func writeOne(c *fiber.Ctx, out *orderuc.Order, err error, okStatus int) error {
	if err != nil {
		return mapErr(err)
	}
	return c.Status(okStatus).JSON(out)
}

func mapErr(err error) error {
	switch err {
	case orderuc.ErrInvalidInput, orderuc.ErrInvalidStatus:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case orderuc.ErrNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case orderuc.ErrConflict:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case orderuc.ErrActorNotResolved:
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
