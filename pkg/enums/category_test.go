package enums

import "testing"

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Wine "); got != ProductCategoryWine {
		t.Fatalf("expected wine, got %q", got)
	}
}

func TestDisplayCapitalizesUnknown(t *testing.T) {
	if got := ProductCategory("mixers").Display(); got != "Mixers" {
		t.Fatalf("expected capitalized category, got %q", got)
	}
	if got := ProductCategoryDairy.Display(); got != "Dairy & Frozen" {
		t.Fatalf("expected curated display name, got %q", got)
	}
}

func TestFallbackImage(t *testing.T) {
	if got := ProductCategoryBeer.FallbackImage(); got == DefaultFallbackImage {
		t.Fatal("known category should have dedicated imagery")
	}
	if got := ProductCategory("mixers").FallbackImage(); got != DefaultFallbackImage {
		t.Fatalf("unknown category should use default image, got %q", got)
	}
}

func TestIsKnown(t *testing.T) {
	if !ProductCategorySake.IsKnown() {
		t.Fatal("sake should be known")
	}
	if ProductCategory("mixers").IsKnown() {
		t.Fatal("mixers should not be known")
	}
}
