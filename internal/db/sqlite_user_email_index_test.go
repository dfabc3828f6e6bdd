package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwelldev/inkwell/internal/models"
)

func TestOpenSQLiteCreatesCaseInsensitiveUserEmailUniqueIndex(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "inkwell-email-index.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	firstUser := models.User{
		Email:        "QA-Test@Inkwell.Local",
		PasswordHash: "hash-1",
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&firstUser).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}

	secondUser := models.User{
		Email:        "qa-test@inkwell.local",
		PasswordHash: "hash-2",
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&secondUser).Error; err == nil {
		t.Fatalf("expected duplicate normalized email insert to fail")
	}
}
