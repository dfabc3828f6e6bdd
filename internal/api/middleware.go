package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/inkwelldev/inkwell/internal/models"
)

const (
	authCookieName  = "inkwell_auth"
	flashCookieName = "inkwell_flash"
	contextUserKey  = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
