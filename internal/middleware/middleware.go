package middleware

import (
	"strings"

	"fridgepal/domain"
	"fridgepal/internal/api/presenters"
	"fridgepal/internal/utils"
	"fridgepal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OwnerMiddleware(ownerID string) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	frontend := utils.GetConfig("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	return cors.New(cors.Config{
		AllowOrigins: frontend,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// OwnerMiddleware scopes inventory routes to the single implicit owner
// created at startup, so the web client needs no login flow.
func (m *middleware) OwnerMiddleware(ownerID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", ownerID)
		return c.Next()
	}
}
