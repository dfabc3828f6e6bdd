package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

type testEntryImage struct {
	Locator string `json:"locator"`
	URL     string `json:"url"`
}

type testEntry struct {
	ID        string           `json:"id"`
	OwnerID   uint             `json:"owner_id"`
	Date      time.Time        `json:"date"`
	Title     string           `json:"title"`
	Thought   string           `json:"thought"`
	ImageRefs []string         `json:"image_refs"`
	Images    []testEntryImage `json:"images"`
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func readEntryResponse(t *testing.T, body io.Reader) testEntry {
	t.Helper()

	entry := testEntry{}
	if err := json.NewDecoder(body).Decode(&entry); err != nil {
		t.Fatalf("decode entry response: %v", err)
	}
	return entry
}

func readEntryListResponse(t *testing.T, body io.Reader) []testEntry {
	t.Helper()

	entries := []testEntry{}
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		t.Fatalf("decode entry list response: %v", err)
	}
	return entries
}
