package graphqlapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	h := NewHandler(newTestExecutor(t, newPopulation()))
	app := fiber.New()
	app.Post("/graphql", h.Post)
	app.Get("/graphql", h.Get)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return out
}

func TestHandlerPost(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ apiVersion }"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := decode(t, resp)["data"].(map[string]any)
	if data["apiVersion"] != "2.3.1" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestHandlerGet(t *testing.T) {
	app := newTestApp(t)

	target := "/graphql?query=" + url.QueryEscape("{ users(first: 1) { email } }")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	users := decode(t, resp)["data"].(map[string]any)["users"].([]any)
	if len(users) != 1 || users[0].(map[string]any)["email"] != "alice@example.com" {
		t.Fatalf("unexpected users %v", users)
	}
}
