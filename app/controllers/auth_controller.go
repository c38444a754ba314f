package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
	"github.com/DavidKiarie/CircleFund/internal/pkg/database"
	"github.com/DavidKiarie/CircleFund/internal/pkg/session"
	"github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EconomyID uint   `json:"economy_id"`
}

// HandleAuthLogin authenticates with email/password and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		// Fall back to form fields for the HTML login page.
		req.Email = c.FormValue("email")
		req.Password = c.FormValue("password")
	}
	if req.Email == "" || req.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "email and password are required")
	}

	// Deliberately vague on failure: do not reveal which part was wrong.
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.Email)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
	}
	if !models.CheckPasswordHash(req.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "account is not active")
	}

	if err := openSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session init failed")
	}

	database.GetDB().Model(user).UpdateColumn("last_login_at", time.Now())

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Name,
		"role":     user.Role,
	})
}

// HandleAuthRegister creates a bce account bound to an economy. Admin roles
// are never self-assignable; promotion is a super_admin action.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	user.Status = models.STATUS_ACTIVE

	if req.EconomyID != 0 {
		if _, err := repository.GetGlobalFactory().GetEconomyRepository().GetByID(req.EconomyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return jsonError(c, fiber.StatusBadRequest, "bad_request", "economy does not exist")
			}
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load economy")
		}
		user.EconomyID = &req.EconomyID
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "account could not be created")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Name,
		"role":     user.Role,
	})
}

// HandleAuthLogout destroys the session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// openSession populates the app session from a user row.
func openSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyRole, user.Role)
	if user.EconomyID != nil {
		sess.Set(usercontext.KeyEconomyID, *user.EconomyID)
	}

	return sess.Save()
}
