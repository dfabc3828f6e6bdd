package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/inkwelldev/inkwell/internal/blob"
	"github.com/inkwelldev/inkwell/internal/security"
)

const blobKeyTokenLength = 16

// AttachmentService stores entry images and keeps the entry record's locator
// sequence consistent with the blob store. Uploads and record writes are two
// separate round trips: callers upload first and only reference locators that
// exist, and removal deletes the blob before dropping its reference.
type AttachmentService struct {
	blobs   blob.Store
	entries *EntryService
}

func NewAttachmentService(blobs blob.Store, entries *EntryService) *AttachmentService {
	return &AttachmentService{blobs: blobs, entries: entries}
}

// Upload stores one image under the owner's namespace and returns its
// locator. The key carries a random token so repeated uploads of the same
// filename never collide.
func (service *AttachmentService) Upload(ctx context.Context, ownerID uint, filename string, content io.Reader, size int64, contentType string) (string, error) {
	token, err := security.RandomString(blobKeyTokenLength, security.TokenAlphabet)
	if err != nil {
		return "", fmt.Errorf("%w: generate key token: %v", ErrUpload, err)
	}

	key := fmt.Sprintf("users/%d/%s-%s", ownerID, token, sanitizeFilename(filename))
	if err := service.blobs.Put(ctx, key, content, size, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return key, nil
}

// ResolveURL maps a stored locator to a retrievable URL for display.
func (service *AttachmentService) ResolveURL(locator string) string {
	return service.blobs.URL(locator)
}

// Remove deletes one attachment: blob first, reference second, so a dangling
// reference is never stored. A blob that is already gone still gets its
// reference dropped; any other blob failure aborts with the record and its
// in-memory locators unchanged.
func (service *AttachmentService) Remove(ctx context.Context, ownerID uint, entryID string, locator string) error {
	entry, err := service.entries.GetForOwner(entryID, ownerID)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(entry.ImageRefs))
	referenced := false
	for _, ref := range entry.ImageRefs {
		if ref == locator {
			referenced = true
			continue
		}
		remaining = append(remaining, ref)
	}
	if !referenced {
		return nil
	}

	if err := service.blobs.Delete(ctx, locator); err != nil && !errors.Is(err, blob.ErrBlobNotFound) {
		return fmt.Errorf("delete attachment blob %s: %w", locator, err)
	}

	return service.entries.SetImageRefs(entryID, ownerID, remaining)
}

// RemoveAllBlobs deletes every blob an entry referenced, best effort. Used
// after an entry record is deleted; the record is already gone, so failures
// are reported for logging rather than rolled back.
func (service *AttachmentService) RemoveAllBlobs(ctx context.Context, locators []string) error {
	var failures []error
	for _, locator := range locators {
		if err := service.blobs.Delete(ctx, locator); err != nil && !errors.Is(err, blob.ErrBlobNotFound) {
			failures = append(failures, fmt.Errorf("delete blob %s: %w", locator, err))
		}
	}
	return errors.Join(failures...)
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	cleaned := strings.Map(func(char rune) rune {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
			return char
		case char == '.' || char == '-' || char == '_':
			return char
		default:
			return '-'
		}
	}, base)
	for strings.Contains(cleaned, "--") {
		cleaned = strings.ReplaceAll(cleaned, "--", "-")
	}
	cleaned = strings.Trim(cleaned, ".-")
	if cleaned == "" {
		return "image"
	}
	return cleaned
}
