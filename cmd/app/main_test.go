package main

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/user-registration/internal/config"
	"github.com/wichananm65/user-registration/internal/user"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

func makeApp(p pinger) *fiber.App {
	h := user.NewHandler(user.NewService(user.NewInMemoryRepository(nil)))
	return newApp(config.Config{AllowOrigins: "*"}, h, p)
}

func TestLandingPage(t *testing.T) {
	app := makeApp(fakePinger{})

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("landing request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for landing page, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `id="register-form"`) {
		t.Fatalf("landing page missing registration form: %s", string(b))
	}

	res2, err := app.Test(httptest.NewRequest("GET", "/app.js", nil))
	if err != nil {
		t.Fatalf("asset request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for app.js, got %d", res2.StatusCode)
	}
}

func TestAPIRoutesTakePrecedenceOverStatic(t *testing.T) {
	app := makeApp(fakePinger{})

	res, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from list route, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", string(b))
	}
}

func TestHealthCheck(t *testing.T) {
	res, err := makeApp(fakePinger{}).Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res2, err := makeApp(fakePinger{err: errors.New("connection refused")}).Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 when storage is down, got %d", res2.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	res, err := makeApp(fakePinger{}).Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}
