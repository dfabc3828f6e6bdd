package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwelldev/inkwell/internal/models"
	"github.com/inkwelldev/inkwell/internal/services"
)

type entryFormInput struct {
	Date    time.Time
	Title   string
	Thought string
}

// parseEntryForm validates the submitted fields locally. A non-empty message
// means the submission is rejected before any store or blob call is made.
func parseEntryForm(c *fiber.Ctx) (entryFormInput, string) {
	input := entryFormInput{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Thought: strings.TrimSpace(c.FormValue("thought")),
	}

	rawDate := strings.TrimSpace(c.FormValue("date"))
	if rawDate == "" {
		return entryFormInput{}, "date is required"
	}
	date, err := parseDateField(rawDate)
	if err != nil {
		return entryFormInput{}, "invalid date"
	}
	input.Date = date

	if input.Title == "" {
		return entryFormInput{}, "title is required"
	}

	return input, ""
}

// uploadFormImages stores every newly selected image, sequentially and before
// the entry record referencing them is written. Locators are returned in
// selection order.
func (handler *Handler) uploadFormImages(c *fiber.Ctx, ownerID uint) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart submission, nothing to upload.
		return []string{}, nil
	}

	files := form.File["images"]
	locators := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader == nil || fileHeader.Size == 0 {
			continue
		}

		content, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", services.ErrUpload, fileHeader.Filename, err)
		}

		locator, err := handler.attachments.Upload(
			c.Context(),
			ownerID,
			fileHeader.Filename,
			content,
			fileHeader.Size,
			fileHeader.Header.Get("Content-Type"),
		)
		content.Close()
		if err != nil {
			return nil, err
		}
		locators = append(locators, locator)
	}

	return locators, nil
}

type entryImageView struct {
	Locator string `json:"locator"`
	URL     string `json:"url"`
}

type entryView struct {
	ID        string           `json:"id"`
	OwnerID   uint             `json:"owner_id"`
	Date      time.Time        `json:"date"`
	Title     string           `json:"title"`
	Thought   string           `json:"thought"`
	ImageRefs []string         `json:"image_refs"`
	Images    []entryImageView `json:"images"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (handler *Handler) buildEntryView(entry models.Entry) entryView {
	images := make([]entryImageView, 0, len(entry.ImageRefs))
	for _, locator := range entry.ImageRefs {
		images = append(images, entryImageView{
			Locator: locator,
			URL:     handler.attachments.ResolveURL(locator),
		})
	}

	refs := entry.ImageRefs
	if refs == nil {
		refs = []string{}
	}

	return entryView{
		ID:        entry.ID,
		OwnerID:   entry.OwnerID,
		Date:      entry.Date,
		Title:     entry.Title,
		Thought:   entry.Thought,
		ImageRefs: refs,
		Images:    images,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

func (handler *Handler) buildEntryViews(entries []models.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, handler.buildEntryView(entry))
	}
	return views
}

func (handler *Handler) respondEntryError(c *fiber.Ctx, status int, message string, backPath string) error {
	if acceptsJSON(c) {
		return apiError(c, status, message)
	}
	handler.setFlashCookie(c, FlashPayload{FormError: message})
	return c.Redirect(backPath, fiber.StatusSeeOther)
}
