package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func decodeEnvelope(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return resp.StatusCode, envelope
}

func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ErrorResponse(c, "something failed", fiber.StatusInternalServerError, "radelement.internal")
	})

	status, envelope := decodeEnvelope(t, app, "/boom?q=1")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if envelope["message"] != "something failed" {
		t.Errorf("message = %v", envelope["message"])
	}
	if envelope["ok"] != false {
		t.Errorf("ok = %v, want false", envelope["ok"])
	}
	if envelope["type"] != "radelement.internal" {
		t.Errorf("type = %v", envelope["type"])
	}
	if envelope["url"] != "/boom?q=1" {
		t.Errorf("url = %v", envelope["url"])
	}
}

func TestNotFoundResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return NotFoundResponse(c, "[404] Resource Not Found")
	})

	status, envelope := decodeEnvelope(t, app, "/no/such/route")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if envelope["message"] != "[404] Resource Not Found" {
		t.Errorf("message = %v", envelope["message"])
	}
	if envelope["url"] != "/no/such/route" {
		t.Errorf("url = %v", envelope["url"])
	}
}
