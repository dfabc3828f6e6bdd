package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwelldev/inkwell/internal/blob"
	"github.com/inkwelldev/inkwell/internal/services"
)

// DeleteEntryImage removes one attachment from an entry: the blob first, the
// locator second. A blob-store failure leaves the stored locator sequence
// exactly as it was.
func (handler *Handler) DeleteEntryImage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	locator := strings.TrimSpace(c.Query("locator"))
	if locator == "" {
		locator = strings.TrimSpace(c.FormValue("locator"))
	}
	if locator == "" {
		return apiError(c, fiber.StatusBadRequest, "locator is required")
	}

	entryID := c.Params("id")
	if err := handler.attachments.Remove(c.Context(), user.ID, entryID, locator); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return apiError(c, fiber.StatusNotFound, "entry not found")
		case errors.Is(err, services.ErrNotOwner):
			return apiError(c, fiber.StatusForbidden, "not authorized for this entry")
		case errors.Is(err, blob.ErrBlobNotFound):
			return apiError(c, fiber.StatusNotFound, "attachment not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to delete attachment")
		}
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
