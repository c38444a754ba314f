package middleware

import (
	"strings"

	"github.com/DavidKiarie/CircleFund/internal/pkg/session"
	"github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous(c)
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	role := session.GetSessionValue(c, usercontext.KeyRole)

	economyID := uint(0)
	if v := sess.Get(usercontext.KeyEconomyID); v != nil {
		if id, ok := v.(uint); ok {
			economyID = id
		}
	}

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		Role:       role,
		EconomyID:  economyID,
	}
	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userID.(uint))
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyRole, role)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
	c.Locals(usercontext.KeyFromProtected, false)
	return c.Next()
}
