package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwelldev/inkwell/internal/models"
)

type EntryRepository interface {
	FindByID(entryID string) (models.Entry, bool, error)
	ListByOwner(ownerID uint) ([]models.Entry, error)
	Create(entry *models.Entry) error
	Save(entry *models.Entry) error
	UpdateImageRefs(entry *models.Entry) error
	DeleteByID(entryID string) error
}

// EntryService is the single place ownership is decided: every read taken on
// behalf of a principal and every mutation goes through the owner check here,
// so no view has to remember to do it.
type EntryService struct {
	entries EntryRepository
}

func NewEntryService(entries EntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

// Create persists a new entry for ownerID and assigns its id. Input is
// validated before the repository is touched.
func (service *EntryService) Create(ownerID uint, input EntryInput) (models.Entry, error) {
	input = NormalizeEntryInput(input)
	if err := ValidateEntryInput(input); err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Date:      input.Date,
		Title:     input.Title,
		Thought:   input.Thought,
		ImageRefs: input.ImageRefs,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

func (service *EntryService) Get(entryID string) (models.Entry, error) {
	entry, found, err := service.entries.FindByID(entryID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("load entry %s: %w", entryID, err)
	}
	if !found {
		return models.Entry{}, ErrNotFound
	}
	return entry, nil
}

// GetForOwner loads an entry and refuses with ErrNotOwner before returning
// any content when it belongs to a different principal.
func (service *EntryService) GetForOwner(entryID string, ownerID uint) (models.Entry, error) {
	entry, err := service.Get(entryID)
	if err != nil {
		return models.Entry{}, err
	}
	if entry.OwnerID != ownerID {
		return models.Entry{}, ErrNotOwner
	}
	return entry, nil
}

func (service *EntryService) ListByOwner(ownerID uint) ([]models.Entry, error) {
	entries, err := service.entries.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Update applies input to an existing entry. The ownership check runs before
// any mutation is sent.
func (service *EntryService) Update(entryID string, ownerID uint, input EntryInput) (models.Entry, error) {
	entry, err := service.GetForOwner(entryID, ownerID)
	if err != nil {
		return models.Entry{}, err
	}

	input = NormalizeEntryInput(input)
	if err := ValidateEntryInput(input); err != nil {
		return models.Entry{}, err
	}

	entry.Date = input.Date
	entry.Title = input.Title
	entry.Thought = input.Thought
	entry.ImageRefs = input.ImageRefs
	if err := service.entries.Save(&entry); err != nil {
		return models.Entry{}, fmt.Errorf("update entry %s: %w", entryID, err)
	}
	return entry, nil
}

// SetImageRefs replaces the locator sequence without touching other fields.
func (service *EntryService) SetImageRefs(entryID string, ownerID uint, refs []string) error {
	entry, err := service.GetForOwner(entryID, ownerID)
	if err != nil {
		return err
	}
	if refs == nil {
		refs = []string{}
	}
	entry.ImageRefs = refs
	if err := service.entries.UpdateImageRefs(&entry); err != nil {
		return fmt.Errorf("update entry %s image refs: %w", entryID, err)
	}
	return nil
}

// Delete removes an entry. A missing id is success, so deleting twice never
// surfaces an error. The removed entry is returned so callers can clean up
// its blobs.
func (service *EntryService) Delete(entryID string, ownerID uint) (models.Entry, bool, error) {
	entry, found, err := service.entries.FindByID(entryID)
	if err != nil {
		return models.Entry{}, false, fmt.Errorf("load entry %s: %w", entryID, err)
	}
	if !found {
		return models.Entry{}, false, nil
	}
	if entry.OwnerID != ownerID {
		return models.Entry{}, false, ErrNotOwner
	}

	if err := service.entries.DeleteByID(entryID); err != nil {
		return models.Entry{}, false, fmt.Errorf("delete entry %s: %w", entryID, err)
	}
	return entry, true, nil
}
