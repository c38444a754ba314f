package middleware

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	icuser "github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !loggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireAPIAdmin gates JSON API routes to admin and super_admin roles.
func RequireAPIAdmin(c *fiber.Ctx) error {
	if !loggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	role, _ := c.Locals(icuser.KeyRole).(string)
	if role != models.ROLE_ADMIN && role != models.ROLE_SUPER_ADMIN {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin role required",
		})
	}
	return c.Next()
}

// RequireAPISuperAdmin gates funding calculation and disbursement routes.
// The capability check lives here at the boundary; the funding core itself
// never consults roles.
func RequireAPISuperAdmin(c *fiber.Ctx) error {
	if !loggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if role, _ := c.Locals(icuser.KeyRole).(string); role != models.ROLE_SUPER_ADMIN {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "super_admin role required",
		})
	}
	return c.Next()
}

func loggedIn(c *fiber.Ctx) bool {
	v := c.Locals(icuser.KeyFromProtected)
	b, ok := v.(bool)
	return ok && b
}
