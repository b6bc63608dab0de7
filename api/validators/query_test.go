package validators

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&bad=abc&big=900", nil)

	if got, err := ParseQueryInt(r, "page", 1, 1, 100); err != nil || got != 3 {
		t.Fatalf("expected 3, got %d err %v", got, err)
	}
	if got, err := ParseQueryInt(r, "missing", 24, 1, 100); err != nil || got != 24 {
		t.Fatalf("expected default 24, got %d err %v", got, err)
	}
	if _, err := ParseQueryInt(r, "bad", 1, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if _, err := ParseQueryInt(r, "big", 1, 1, 100); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
}
