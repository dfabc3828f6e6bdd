package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwelldev/inkwell/internal/services"
)

func (handler *Handler) ShowEntryList(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)

	entries, err := handler.entries.ListByOwner(user.ID)
	if err != nil {
		return handler.render(c, "entry_list", fiber.Map{
			"Title": "My Entries",
			"Error": "failed to load entries",
		})
	}

	return handler.render(c, "entry_list", fiber.Map{
		"Title":   "My Entries",
		"Entries": handler.buildEntryViews(entries),
		"Error":   flash.FormError,
	})
}

func (handler *Handler) ShowNewEntry(c *fiber.Ctx) error {
	flash := handler.popFlashCookie(c)
	return handler.render(c, "entry_form", fiber.Map{
		"Title":      "New Entry",
		"Mode":       "create",
		"FormAction": "/api/entries",
		"Error":      flash.FormError,
	})
}

func (handler *Handler) ShowEntryDetail(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	entry, err := handler.entries.GetForOwner(c.Params("id"), user.ID)
	if err != nil {
		status, message := entryErrorResponse(err)
		c.Status(status)
		return handler.render(c, "entry_detail", fiber.Map{
			"Title": "Entry",
			"Error": message,
		})
	}

	return handler.render(c, "entry_detail", fiber.Map{
		"Title": entry.Title,
		"Entry": handler.buildEntryView(entry),
	})
}

// ShowEditEntry refuses to populate the form for another principal's entry;
// not even a partial read of its content reaches the response.
func (handler *Handler) ShowEditEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	entryID := c.Params("id")
	entry, err := handler.entries.GetForOwner(entryID, user.ID)
	if err != nil {
		status, message := entryErrorResponse(err)
		if errors.Is(err, services.ErrNotOwner) {
			message = "You are not authorized to edit this entry"
		}
		c.Status(status)
		return handler.render(c, "entry_form", fiber.Map{
			"Title": "Edit Entry",
			"Mode":  "edit",
			"Error": message,
		})
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "entry_form", fiber.Map{
		"Title":      "Edit Entry",
		"Mode":       "edit",
		"FormAction": "/api/entries/" + entry.ID,
		"Entry":      handler.buildEntryView(entry),
		"Error":      flash.FormError,
	})
}
