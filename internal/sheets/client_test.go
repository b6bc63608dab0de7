package sheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/rs/zerolog"
)

const locationsCSV = "ID,Name,Address,Phone,Hours Weekday,Hours Weekend,Lat,Lng\n" +
	"main-store,Harborlight Market,12 Pier Ave,555-0100,9am-9pm,10am-6pm,34.0101,-118.4965\n" +
	"\"north\",\"Harborlight North, Annex\",40 Bay Rd,555-0101,8am-8pm,closed,,\n"

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func TestFetchRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spreadsheets/d/sheet-1/gviz/tq" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("gid"); got != "42" {
			t.Errorf("unexpected gid %q", got)
		}
		if got := r.URL.Query().Get("tqx"); got != "out:csv" {
			t.Errorf("unexpected tqx %q", got)
		}
		_, _ = w.Write([]byte(locationsCSV))
	}))
	defer server.Close()

	client, err := NewClient("sheet-1", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	rows, err := client.FetchRows(context.Background(), "42")
	if err != nil {
		t.Fatalf("fetch rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["hoursWeekday"] != "9am-9pm" {
		t.Errorf("header not camelCased: %v", rows[0])
	}
	if rows[1]["name"] != "Harborlight North, Annex" {
		t.Errorf("quoted value mangled: %q", rows[1]["name"])
	}
	if rows[1]["lat"] != "" {
		t.Errorf("missing value should be blank, got %q", rows[1]["lat"])
	}
}

func TestFetchRowsHeaderOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ID,Question,Answer\n"))
	}))
	defer server.Close()

	client, err := NewClient("sheet-1", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	rows, err := client.FetchRows(context.Background(), "7")
	if err != nil {
		t.Fatalf("fetch rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestFetchRowsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient("sheet-1", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.FetchRows(context.Background(), "7"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestNewClientRequiresSheetID(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected error for blank sheet id")
	}
}

func TestCamelKey(t *testing.T) {
	cases := map[string]string{
		"Hours Weekday": "hoursWeekday",
		"ID":            "id",
		"Name":          "name",
		" Is Tourist Favorite ": "isTouristFavorite",
	}
	for in, want := range cases {
		if got := camelKey(in); got != want {
			t.Errorf("camelKey(%q) = %q, want %q", in, got, want)
		}
	}
}
