package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mirrors the product creation payload shape
type testCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required"`
	Quantity int     `json:"quantity" validate:"required"`
	Image    string  `json:"image" validate:"required"`
}

func decodeInto(t *testing.T, body map[string]interface{}, v interface{}) error {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return DecodeAndValidate(req, v)
}

// Feature: storefront-api, Property 12: Required rejects absent and zero values alike
func TestProperty_RequiredRejectsMissingAndZeroValues(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("absent and zero-valued fields both fail validation", prop.ForAll(
		func(invalidCase int) bool {
			body := map[string]interface{}{
				"name":     "Widget",
				"price":    3.50,
				"quantity": 2,
				"image":    "https://img.example.com/widget.png",
			}

			switch invalidCase % 8 {
			case 0:
				delete(body, "name")
			case 1:
				delete(body, "price")
			case 2:
				delete(body, "quantity")
			case 3:
				delete(body, "image")
			case 4:
				body["name"] = ""
			case 5:
				body["price"] = 0
			case 6:
				body["quantity"] = 0
			case 7:
				body["image"] = ""
			}

			var req testCreateRequest
			err := decodeInto(t, body, &req)
			if err == nil {
				return false // Should have failed validation
			}

			// Every failure must format into field-level errors
			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}
			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidRequestsPassValidation(t *testing.T) {
	body := map[string]interface{}{
		"name":     "Widget",
		"price":    3.50,
		"quantity": 2,
		"image":    "https://img.example.com/widget.png",
	}

	var req testCreateRequest
	if err := decodeInto(t, body, &req); err != nil {
		t.Fatalf("Expected valid request to pass, got %v", err)
	}

	if req.Name != "Widget" || req.Price != 3.50 || req.Quantity != 2 {
		t.Fatalf("Decoded fields do not match input: %+v", req)
	}
}

func TestMalformedJSONFailsDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte(`{"name": `)))
	req.Header.Set("Content-Type", "application/json")

	var out testCreateRequest
	if err := DecodeAndValidate(req, &out); err == nil {
		t.Fatal("Expected decode error for malformed JSON")
	}
}
