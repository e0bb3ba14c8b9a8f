package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireStaff gates the triage surface. All non-citizen callers are treated
// as fully privileged staff.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return Unauthorized("User not found")
		}

		if !actor.IsStaff() {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
