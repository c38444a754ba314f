package usercontext

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/gofiber/fiber/v2"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Role       string `json:"role"`
	EconomyID  uint   `json:"economy_id"` // 0 unless the user is a bce member
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals("USER_CONTEXT"); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsAdmin checks if the current user has admin or super_admin rights
func IsAdmin(c *fiber.Ctx) bool {
	role := GetUserContext(c).Role
	return role == models.ROLE_ADMIN || role == models.ROLE_SUPER_ADMIN
}

// IsSuperAdmin checks if the current user may trigger disbursements
func IsSuperAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).Role == models.ROLE_SUPER_ADMIN
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetEconomyID returns the economy bound to the current bce user, or 0
func GetEconomyID(c *fiber.Ctx) uint {
	return GetUserContext(c).EconomyID
}
