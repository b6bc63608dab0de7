package enums

import "strings"

// ProductCategory is the lower-cased catalog category a product belongs to.
// The feed may carry categories outside the known set; those still flow
// through the catalog but fall back to the default image and display name.
type ProductCategory string

const (
	ProductCategoryWhiskey  ProductCategory = "whiskey"
	ProductCategoryVodka    ProductCategory = "vodka"
	ProductCategoryWine     ProductCategory = "wine"
	ProductCategoryTequila  ProductCategory = "tequila"
	ProductCategoryBeer     ProductCategory = "beer"
	ProductCategorySake     ProductCategory = "sake"
	ProductCategoryPharmacy ProductCategory = "pharmacy"
	ProductCategoryDairy    ProductCategory = "dairy"
)

// CategoryInfo carries the display metadata for a known category.
type CategoryInfo struct {
	ID   ProductCategory `json:"id"`
	Name string          `json:"name"`
	Icon string          `json:"icon"`
}

var knownCategories = []CategoryInfo{
	{ID: ProductCategoryWhiskey, Name: "Whiskey", Icon: "🥃"},
	{ID: ProductCategoryVodka, Name: "Vodka", Icon: "🍸"},
	{ID: ProductCategoryWine, Name: "Wine", Icon: "🍷"},
	{ID: ProductCategoryTequila, Name: "Tequila", Icon: "🥃"},
	{ID: ProductCategoryBeer, Name: "Beer", Icon: "🍺"},
	{ID: ProductCategorySake, Name: "Sake", Icon: "🍶"},
	{ID: ProductCategoryPharmacy, Name: "Pharmacy", Icon: "💊"},
	{ID: ProductCategoryDairy, Name: "Dairy & Frozen", Icon: "🧊"},
}

var fallbackImages = map[ProductCategory]string{
	ProductCategoryWine:     "https://images.unsplash.com/photo-1510812431401-41d2bd2722f3?w=400&q=80",
	ProductCategoryWhiskey:  "https://images.unsplash.com/photo-1527281400683-1aae777175f8?w=400&q=80",
	ProductCategoryVodka:    "https://images.unsplash.com/photo-1608885898957-a559228e8749?w=400&q=80",
	ProductCategoryTequila:  "https://images.unsplash.com/photo-1516535794938-6063878f08cc?w=400&q=80",
	ProductCategoryBeer:     "https://images.unsplash.com/photo-1535958636474-b021ee887b13?w=400&q=80",
	ProductCategorySake:     "https://images.unsplash.com/photo-1553361371-9b22f78e8b1d?w=400&q=80",
	ProductCategoryPharmacy: "https://images.unsplash.com/photo-1631549916768-4119b2e5f926?w=400&q=80",
	ProductCategoryDairy:    "https://images.unsplash.com/photo-1604719312566-8912e9227c6a?w=400&q=80",
}

// DefaultFallbackImage is served for categories without dedicated imagery.
const DefaultFallbackImage = "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=400&fit=crop&crop=center"

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// Display returns the human-readable name, capitalizing unknown categories.
func (c ProductCategory) Display() string {
	for _, info := range knownCategories {
		if info.ID == c {
			return info.Name
		}
	}
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// FallbackImage returns the category-level product image URL.
func (c ProductCategory) FallbackImage() string {
	if img, ok := fallbackImages[c]; ok {
		return img
	}
	return DefaultFallbackImage
}

// IsKnown reports whether the category belongs to the curated set.
func (c ProductCategory) IsKnown() bool {
	for _, info := range knownCategories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// NormalizeCategory lower-cases and trims a raw feed category value.
func NormalizeCategory(raw string) ProductCategory {
	return ProductCategory(strings.ToLower(strings.TrimSpace(raw)))
}

// KnownCategories returns the curated category list in display order.
func KnownCategories() []CategoryInfo {
	out := make([]CategoryInfo, len(knownCategories))
	copy(out, knownCategories)
	return out
}
