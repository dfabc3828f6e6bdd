package db

import (
	"github.com/inkwelldev/inkwell/internal/models"
	"gorm.io/gorm"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

func (repo *EntryRepository) FindByID(entryID string) (models.Entry, bool, error) {
	entry := models.Entry{}
	result := repo.database.Where("id = ?", entryID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.Entry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Entry{}, false, nil
	}
	return entry, true, nil
}

// ListByOwner returns only the given owner's entries, newest first.
func (repo *EntryRepository) ListByOwner(ownerID uint) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) Create(entry *models.Entry) error {
	return repo.database.Create(entry).Error
}

func (repo *EntryRepository) Save(entry *models.Entry) error {
	return repo.database.Save(entry).Error
}

func (repo *EntryRepository) UpdateImageRefs(entry *models.Entry) error {
	return repo.database.Model(entry).Select("image_refs").Updates(entry).Error
}

func (repo *EntryRepository) DeleteByID(entryID string) error {
	return repo.database.Where("id = ?", entryID).Delete(&models.Entry{}).Error
}
