package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postRegisterJSON(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	return response
}

func TestRegisterRejectsInvalidCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []struct {
		name            string
		password        string
		confirmPassword string
		wantError       string
	}{
		{name: "short password", password: "Ab1", confirmPassword: "Ab1", wantError: "password too short"},
		{name: "no digits", password: "Abcdefgh", confirmPassword: "Abcdefgh", wantError: "weak password"},
		{name: "no upper case", password: "abcdefg1", confirmPassword: "abcdefg1", wantError: "weak password"},
		{name: "mismatch", password: "Abcdefg1", confirmPassword: "Abcdefg2", wantError: "password mismatch"},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			response := postRegisterJSON(t, app, url.Values{
				"email":            {"writer@example.com"},
				"password":         {testCase.password},
				"confirm_password": {testCase.confirmPassword},
			})
			defer response.Body.Close()

			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != testCase.wantError {
				t.Fatalf("expected error %q, got %q", testCase.wantError, got)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "writer@example.com", "Abcdefg1")

	response := postRegisterJSON(t, app, url.Values{
		"email":            {"Writer@Example.com"},
		"password":         {"Abcdefg1"},
		"confirm_password": {"Abcdefg1"},
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != "email already exists" {
		t.Fatalf("expected duplicate email error, got %q", got)
	}
}

func TestRegisterCreatesSessionAndAccount(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := postRegisterJSON(t, app, url.Values{
		"email":            {"writer@example.com"},
		"password":         {"Abcdefg1"},
		"confirm_password": {"Abcdefg1"},
		"display_name":     {"The Writer"},
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	if responseCookieValue(response.Cookies(), "inkwell_auth") == "" {
		t.Fatal("expected auth cookie after registration")
	}
}
