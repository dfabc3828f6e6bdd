package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired gates guarded views and API routes. A request either resolves
// to a principal before anything renders, or it is turned away: API callers
// get 401, page requests are sent back to the sign-in view.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
