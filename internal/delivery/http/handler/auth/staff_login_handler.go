package auth

import (
	"github.com/gofiber/fiber/v2"

	authuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/auth"
)

type StaffLoginHandler struct {
	uc *authuc.StaffLoginUsecase
}

func NewStaffLoginHandler(uc *authuc.StaffLoginUsecase) *StaffLoginHandler {
	return &StaffLoginHandler{uc: uc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *StaffLoginHandler) Handle(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	out, err := h.uc.Execute(c.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case authuc.ErrInvalidCredentials, authuc.ErrInactiveUser:
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(out)
}
