package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwelldev/inkwell/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.entries.ListByOwner(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to list entries")
	}

	return c.JSON(handler.buildEntryViews(entries))
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, validationError := parseEntryForm(c)
	if validationError != "" {
		return handler.respondEntryError(c, fiber.StatusBadRequest, validationError, "/entries")
	}

	locators, err := handler.uploadFormImages(c, user.ID)
	if err != nil {
		return handler.respondEntryError(c, fiber.StatusInternalServerError, "failed to upload image", "/entries")
	}

	entry, err := handler.entries.Create(user.ID, services.EntryInput{
		Date:      input.Date,
		Title:     input.Title,
		Thought:   input.Thought,
		ImageRefs: locators,
	})
	if err != nil {
		status, message := entryErrorResponse(err)
		return handler.respondEntryError(c, status, message, "/entries")
	}

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(handler.buildEntryView(entry))
	}
	return c.Redirect("/entry/"+entry.ID, fiber.StatusSeeOther)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.entries.GetForOwner(c.Params("id"), user.ID)
	if err != nil {
		status, message := entryErrorResponse(err)
		return apiError(c, status, message)
	}

	return c.JSON(handler.buildEntryView(entry))
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entryID := c.Params("id")
	backPath := "/edit/" + entryID

	// Ownership is settled before anything else: no upload and no mutation
	// may happen on another principal's entry.
	existing, err := handler.entries.GetForOwner(entryID, user.ID)
	if err != nil {
		status, message := entryErrorResponse(err)
		return handler.respondEntryError(c, status, message, "/entrylist")
	}

	input, validationError := parseEntryForm(c)
	if validationError != "" {
		return handler.respondEntryError(c, fiber.StatusBadRequest, validationError, backPath)
	}

	locators, err := handler.uploadFormImages(c, user.ID)
	if err != nil {
		return handler.respondEntryError(c, fiber.StatusInternalServerError, "failed to upload image", backPath)
	}

	entry, err := handler.entries.Update(entryID, user.ID, services.EntryInput{
		Date:      input.Date,
		Title:     input.Title,
		Thought:   input.Thought,
		ImageRefs: services.MergeImageRefs(existing.ImageRefs, locators),
	})
	if err != nil {
		status, message := entryErrorResponse(err)
		return handler.respondEntryError(c, status, message, backPath)
	}

	if acceptsJSON(c) {
		return c.JSON(handler.buildEntryView(entry))
	}
	return c.Redirect("/entry/"+entry.ID, fiber.StatusSeeOther)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, deleted, err := handler.entries.Delete(c.Params("id"), user.ID)
	if err != nil {
		status, message := entryErrorResponse(err)
		return apiError(c, status, message)
	}

	if deleted && len(entry.ImageRefs) > 0 {
		// The record is gone either way; blob cleanup is best effort.
		if err := handler.attachments.RemoveAllBlobs(c.Context(), entry.ImageRefs); err != nil {
			log.Printf("cleanup blobs for entry %s: %v", entry.ID, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func entryErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "entry not found"
	case errors.Is(err, services.ErrNotOwner):
		return fiber.StatusForbidden, "not authorized for this entry"
	case errors.Is(err, services.ErrUpload):
		return fiber.StatusInternalServerError, "failed to upload image"
	default:
		return fiber.StatusInternalServerError, "entry operation failed"
	}
}
