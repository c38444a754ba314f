package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/internal/pkg/database"
)

// HandleOAuthBegin starts the provider flow.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// First-time OAuth logins get a bce account without an economy binding; an
// admin assigns the economy afterwards.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	db := database.GetDB()

	var appUser models.User
	res := db.Where("oauth_provider = ? AND oauth_id = ?", u.Provider, u.UserID).First(&appUser)
	if res.Error != nil {
		// Optional email match before creating a fresh account.
		if u.Email != "" {
			_ = db.Where("email = ?", u.Email).First(&appUser).Error
		}
		if appUser.ID == 0 {
			// Password is a random placeholder; OAuth users never log in
			// with it.
			placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
			hash, _ := models.HashPassword(placeholder)
			email := u.Email
			if email == "" {
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			appUser = models.User{
				Name:     firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
				Email:    email,
				Password: hash,
				Role:     models.ROLE_BCE,
				Status:   models.STATUS_ACTIVE,
			}
			if err := db.Create(&appUser).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
			}
		}
		appUser.OAuthProvider = u.Provider
		appUser.OAuthID = u.UserID
		if err := db.Save(&appUser).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("link provider failed: %v", err))
		}
	}

	if err := openSession(c, &appUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	_ = db.Model(&appUser).UpdateColumn("last_login_at", time.Now()).Error

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleOAuthLogout terminates the provider session then the app session.
func HandleOAuthLogout(c *fiber.Ctx) error {
	_ = gothfiber.Logout(c)
	return HandleAuthLogout(c)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
