package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ouvidoria-ativa/internal/domain"
)

const ActorContextKey = "actor"

// Claims is the shape of the externally issued bearer token. Token issuance
// (login, anonymous citizen sessions) lives outside this service; the
// middleware only validates and extracts the actor.
type Claims struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	jwt.RegisteredClaims
}

// ActorProvider parses a bearer token when present and stores the resulting
// actor in the request context. A missing or invalid token leaves the request
// anonymous; handlers that mandate an actor reject it downstream.
func ActorProvider(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actor := parseActor(c, secret); actor != nil {
			c.Locals(ActorContextKey, actor)
		}
		return c.Next()
	}
}

// ActorRequired rejects requests that carry no valid bearer token.
func ActorRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := parseActor(c, secret)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid authorization token",
			})
		}

		c.Locals(ActorContextKey, actor)
		return c.Next()
	}
}

func parseActor(c *fiber.Ctx, secret string) *domain.Actor {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	role := domain.Role(claims.Role)
	if role != domain.RoleStaff {
		role = domain.RoleCitizen
	}

	return &domain.Actor{
		ID:          claims.UserID,
		DisplayName: claims.DisplayName,
		Role:        role,
	}
}

// GetActor returns the authenticated actor, or nil for anonymous requests.
func GetActor(c *fiber.Ctx) *domain.Actor {
	actor, ok := c.Locals(ActorContextKey).(*domain.Actor)
	if !ok {
		return nil
	}
	return actor
}
