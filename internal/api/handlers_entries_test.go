package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCreateEntryWithImageRoundTrip(t *testing.T) {
	app, database, mediaDir := newTestApp(t)
	user := createTestUser(t, database, "writer@example.com", "Abcdefg1")
	cookie := loginAndExtractAuthCookie(t, app, "writer@example.com", "Abcdefg1")

	request := newEntryFormRequest(t, http.MethodPost, "/api/entries", map[string]string{
		"date":    "2024-02-01",
		"title":   "Morning pages",
		"thought": "Fog on the river today.",
	}, []entryFormFile{{Filename: "river.jpg", Content: "jpeg-bytes"}})
	request.Header.Set("Cookie", cookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	created := readEntryResponse(t, response.Body)
	if created.ID == "" {
		t.Fatal("expected a generated entry id")
	}
	if created.Title != "Morning pages" {
		t.Fatalf("unexpected title %q", created.Title)
	}
	if got := created.Date.Format("2006-01-02"); got != "2024-02-01" {
		t.Fatalf("unexpected date %s", got)
	}
	if len(created.ImageRefs) != 1 {
		t.Fatalf("expected one image ref, got %d", len(created.ImageRefs))
	}

	locator := created.ImageRefs[0]
	if !strings.HasPrefix(locator, "users/") {
		t.Fatalf("locator must be scoped under users/, got %q", locator)
	}
	if !strings.HasSuffix(locator, "-river.jpg") {
		t.Fatalf("locator must keep the sanitized filename, got %q", locator)
	}
	if _, err := os.Stat(filepath.Join(mediaDir, filepath.FromSlash(locator))); err != nil {
		t.Fatalf("uploaded blob is missing on disk: %v", err)
	}
	if len(created.Images) != 1 || created.Images[0].URL != "/media/"+locator {
		t.Fatalf("unexpected image views %+v", created.Images)
	}

	getRequest := httptest.NewRequest(http.MethodGet, "/api/entries/"+created.ID, nil)
	getRequest.Header.Set("Cookie", cookie)
	getRequest.Header.Set("Accept", "application/json")

	getResponse, err := app.Test(getRequest, -1)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	defer getResponse.Body.Close()

	if getResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", getResponse.StatusCode)
	}
	fetched := readEntryResponse(t, getResponse.Body)
	if fetched.ID != created.ID || fetched.OwnerID != user.ID {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
	if fetched.Thought != "Fog on the river today." {
		t.Fatalf("unexpected thought %q", fetched.Thought)
	}
}

func TestCreateEntryRejectsMissingFields(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "writer@example.com", "Abcdefg1")
	cookie := loginAndExtractAuthCookie(t, app, "writer@example.com", "Abcdefg1")

	cases := []struct {
		name      string
		fields    map[string]string
		wantError string
	}{
		{name: "missing title", fields: map[string]string{"date": "2024-02-01", "title": "  "}, wantError: "title is required"},
		{name: "missing date", fields: map[string]string{"title": "Morning pages"}, wantError: "date is required"},
		{name: "malformed date", fields: map[string]string{"date": "02/01/2024", "title": "Morning pages"}, wantError: "invalid date"},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			request := newEntryFormRequest(t, http.MethodPost, "/api/entries", testCase.fields, nil)
			request.Header.Set("Cookie", cookie)
			request.Header.Set("Accept", "application/json")

			response, err := app.Test(request, -1)
			if err != nil {
				t.Fatalf("create request failed: %v", err)
			}
			defer response.Body.Close()

			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != testCase.wantError {
				t.Fatalf("expected error %q, got %q", testCase.wantError, got)
			}
		})
	}

	if count := countEntries(t, database); count != 0 {
		t.Fatalf("rejected submissions must not persist entries, found %d", count)
	}
}

func TestUpdateEntryKeepsExistingImages(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "writer@example.com", "Abcdefg1")
	cookie := loginAndExtractAuthCookie(t, app, "writer@example.com", "Abcdefg1")

	created := createEntryViaAPI(t, app, cookie, "2024-02-01", "Morning pages", []entryFormFile{
		{Filename: "first.jpg", Content: "one"},
	})

	request := newEntryFormRequest(t, http.MethodPost, "/api/entries/"+created.ID, map[string]string{
		"date":    "2024-02-02",
		"title":   "Morning pages, revised",
		"thought": "Second thoughts.",
	}, []entryFormFile{{Filename: "second.jpg", Content: "two"}})
	request.Header.Set("Cookie", cookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	updated := readEntryResponse(t, response.Body)
	if updated.Title != "Morning pages, revised" {
		t.Fatalf("unexpected title %q", updated.Title)
	}
	if len(updated.ImageRefs) != 2 {
		t.Fatalf("expected both image refs after update, got %v", updated.ImageRefs)
	}
	if updated.ImageRefs[0] != created.ImageRefs[0] {
		t.Fatal("existing image ref must be preserved first")
	}
}

func createEntryViaAPI(t *testing.T, app *fiber.App, cookie string, date string, title string, files []entryFormFile) testEntry {
	t.Helper()

	request := newEntryFormRequest(t, http.MethodPost, "/api/entries", map[string]string{
		"date":  date,
		"title": title,
	}, files)
	request.Header.Set("Cookie", cookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 for entry setup, got %d", response.StatusCode)
	}
	return readEntryResponse(t, response.Body)
}
