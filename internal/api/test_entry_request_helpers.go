package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwelldev/inkwell/internal/models"
	"gorm.io/gorm"
)

type entryFormFile struct {
	Filename string
	Content  string
}

// newEntryFormRequest builds a multipart submission the way the entry form
// posts it, including zero or more file parts under the "images" field.
func newEntryFormRequest(t *testing.T, method string, target string, fields map[string]string, files []entryFormFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write form field %s: %v", name, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile("images", file.Filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", file.Filename, err)
		}
		if _, err := part.Write([]byte(file.Content)); err != nil {
			t.Fatalf("write form file %s: %v", file.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func countEntries(t *testing.T, database *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := database.Model(&models.Entry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return count
}
