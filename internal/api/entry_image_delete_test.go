package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteEntryImageRemovesBlobAndReference(t *testing.T) {
	app, database, mediaDir := newTestApp(t)
	createTestUser(t, database, "writer@example.com", "Abcdefg1")
	cookie := loginAndExtractAuthCookie(t, app, "writer@example.com", "Abcdefg1")

	entry := createEntryViaAPI(t, app, cookie, "2024-02-01", "Illustrated", []entryFormFile{
		{Filename: "keep.jpg", Content: "keep"},
		{Filename: "drop.jpg", Content: "drop"},
	})
	if len(entry.ImageRefs) != 2 {
		t.Fatalf("expected two image refs, got %v", entry.ImageRefs)
	}

	dropped := entry.ImageRefs[1]
	droppedPath := filepath.Join(mediaDir, filepath.FromSlash(dropped))

	target := "/api/entries/" + entry.ID + "/images?locator=" + url.QueryEscape(dropped)
	request := httptest.NewRequest(http.MethodDelete, target, nil)
	request.Header.Set("Cookie", cookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("image delete request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if _, err := os.Stat(droppedPath); !os.IsNotExist(err) {
		t.Fatalf("expected blob removed from disk, stat err: %v", err)
	}

	getRequest := httptest.NewRequest(http.MethodGet, "/api/entries/"+entry.ID, nil)
	getRequest.Header.Set("Cookie", cookie)
	getRequest.Header.Set("Accept", "application/json")

	getResponse, err := app.Test(getRequest, -1)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	defer getResponse.Body.Close()

	fetched := readEntryResponse(t, getResponse.Body)
	if len(fetched.ImageRefs) != 1 || fetched.ImageRefs[0] != entry.ImageRefs[0] {
		t.Fatalf("expected only the kept ref to remain, got %v", fetched.ImageRefs)
	}
}

func TestDeleteEntryImageRequiresLocator(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "writer@example.com", "Abcdefg1")
	cookie := loginAndExtractAuthCookie(t, app, "writer@example.com", "Abcdefg1")

	entry := createEntryViaAPI(t, app, cookie, "2024-02-01", "Illustrated", nil)

	request := httptest.NewRequest(http.MethodDelete, "/api/entries/"+entry.ID+"/images", nil)
	request.Header.Set("Cookie", cookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("image delete request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != "locator is required" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestDeleteEntryImageOnForeignEntryIsForbidden(t *testing.T) {
	app, database, mediaDir := newTestApp(t)
	createTestUser(t, database, "alice@example.com", "Abcdefg1")
	createTestUser(t, database, "bob@example.com", "Abcdefg1")

	aliceCookie := loginAndExtractAuthCookie(t, app, "alice@example.com", "Abcdefg1")
	bobCookie := loginAndExtractAuthCookie(t, app, "bob@example.com", "Abcdefg1")

	entry := createEntryViaAPI(t, app, aliceCookie, "2024-02-01", "Illustrated", []entryFormFile{
		{Filename: "mine.jpg", Content: "mine"},
	})

	target := "/api/entries/" + entry.ID + "/images?locator=" + url.QueryEscape(entry.ImageRefs[0])
	request := httptest.NewRequest(http.MethodDelete, target, nil)
	request.Header.Set("Cookie", bobCookie)
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("image delete request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(mediaDir, filepath.FromSlash(entry.ImageRefs[0]))); err != nil {
		t.Fatalf("foreign request must not remove the blob: %v", err)
	}
}
