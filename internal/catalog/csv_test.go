package catalog

import (
	"testing"

	"github.com/harborlight/storefront-backend/pkg/enums"
)

const sampleFeed = "Name of Product,Code,Price in Store,Category\n" +
	"Grey Goose Vodka 750ml,12345678,29.99,Vodka\n" +
	"\"Buffalo Trace, Kentucky Bourbon\",87654321,34.99,whiskey\n" +
	",99999999,9.99,beer\n" +
	"Short Row,11111111\n" +
	"Napa Valley Cabernet Sauvignon,22222222,,wine\n"

func TestParseProducts(t *testing.T) {
	products := ParseProducts(sampleFeed, "main-store")
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}

	vodka := products[0]
	if vodka.ID != "vodka-12345678" {
		t.Errorf("expected id vodka-12345678, got %q", vodka.ID)
	}
	if vodka.Category != enums.ProductCategoryVodka {
		t.Errorf("expected normalized category, got %q", vodka.Category)
	}
	if vodka.Subcategory != "Premium Vodka" {
		t.Errorf("expected Premium Vodka, got %q", vodka.Subcategory)
	}
	if vodka.Size != "750ml" {
		t.Errorf("expected size 750ml, got %q", vodka.Size)
	}
	if vodka.Price != 0 {
		t.Errorf("feed prices are discarded, got %f", vodka.Price)
	}
	if vodka.Description != "Grey Goose Vodka 750ml - Available in store." {
		t.Errorf("unexpected description %q", vodka.Description)
	}
	if len(vodka.Locations) != 1 || vodka.Locations[0] != "main-store" {
		t.Errorf("expected location main-store, got %v", vodka.Locations)
	}

	whiskey := products[1]
	if whiskey.Name != "Buffalo Trace, Kentucky Bourbon" {
		t.Errorf("quoted field mangled: %q", whiskey.Name)
	}
	if whiskey.Subcategory != "Bourbon" {
		t.Errorf("expected Bourbon, got %q", whiskey.Subcategory)
	}

	wine := products[2]
	if wine.Image != enums.ProductCategoryWine.FallbackImage() {
		t.Errorf("expected wine fallback image, got %q", wine.Image)
	}
}

func TestParseProductsKeepsEmptyPriceRows(t *testing.T) {
	// Only name, code, and category are required. A blank price cell still
	// produces four positional fields, so the row survives.
	feed := "Name of Product,Code,Price in Store,Category\n" +
		"House Red Blend,44444444,,wine\n"
	products := ParseProducts(feed, "main-store")
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].ID != "wine-44444444" || products[0].Price != 0 {
		t.Fatalf("unexpected product: %+v", products[0])
	}
}

func TestParseProductsEmptyFeed(t *testing.T) {
	if got := ParseProducts("", "main-store"); got != nil {
		t.Fatalf("expected nil for empty feed, got %v", got)
	}
	headerOnly := "Name of Product,Code,Price in Store,Category\n"
	if got := ParseProducts(headerOnly, "main-store"); len(got) != 0 {
		t.Fatalf("expected no products for header-only feed, got %d", len(got))
	}
}

func TestSplitCSVLine(t *testing.T) {
	fields := splitCSVLine(`plain,"quoted, comma","escaped ""quote""",tail`)
	want := []string{"plain", "quoted, comma", `escaped "quote"`, "tail"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d: %v", len(want), len(fields), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: got %q, want %q", i, fields[i], want[i])
		}
	}
}
