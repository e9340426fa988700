package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type JWTConfig struct {
	Secret string
}

// RequireStaffJWT guards the staff API group. On success the acting user's
// id lands in c.Locals("user_id") for handlers that need the actor.
func RequireStaffJWT(cfg JWTConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token signing method")
			}
			return secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}

		if typ, _ := claims["typ"].(string); typ != "" && typ != "staff" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token type")
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals("user_id", sub)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Locals("user_email", email)
		}
		c.Locals("claims", claims)

		return c.Next()
	}
}
