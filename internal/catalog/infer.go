package catalog

import (
	"regexp"
	"strings"

	"github.com/harborlight/storefront-backend/pkg/enums"
)

// subcategoryRule maps keywords found in a product name to a subcategory.
// Rules are ordered; the first match wins.
type subcategoryRule struct {
	keywords []string
	label    string
}

var subcategoryRules = map[enums.ProductCategory][]subcategoryRule{
	enums.ProductCategoryWine: {
		{[]string{"cabernet", "sauvignon"}, "Red Wine"},
		{[]string{"pinot noir", "merlot"}, "Red Wine"},
		{[]string{"zinfandel", "malbec"}, "Red Wine"},
		{[]string{"syrah", "shiraz"}, "Red Wine"},
		{[]string{"chianti", "red"}, "Red Wine"},
		{[]string{"chardonnay", "pinot grigio"}, "White Wine"},
		{[]string{"sauvignon blanc", "riesling"}, "White Wine"},
		{[]string{"pinot gris", "white"}, "White Wine"},
		{[]string{"rosé", "rose"}, "Rosé"},
		{[]string{"sparkling", "champagne"}, "Sparkling"},
		{[]string{"port", "sherry"}, "Fortified Wine"},
	},
	enums.ProductCategoryWhiskey: {
		{[]string{"bourbon"}, "Bourbon"},
		{[]string{"scotch", "islay"}, "Scotch"},
		{[]string{"japanese", "yamazaki"}, "Japanese Whiskey"},
		{[]string{"irish"}, "Irish Whiskey"},
		{[]string{"rye"}, "Rye Whiskey"},
		{[]string{"fernet", "branca"}, "Amaro"},
	},
	enums.ProductCategoryVodka: {
		{[]string{"gin"}, "Gin"},
		{[]string{"premium", "grey goose"}, "Premium Vodka"},
		{[]string{"craft", "handmade"}, "Craft Vodka"},
		{[]string{"flavored"}, "Flavored Vodka"},
	},
	enums.ProductCategoryTequila: {
		{[]string{"anejo", "añejo"}, "Añejo"},
		{[]string{"reposado"}, "Reposado"},
		{[]string{"blanco", "silver"}, "Blanco"},
		{[]string{"mezcal"}, "Mezcal"},
	},
	enums.ProductCategoryBeer: {
		{[]string{"ipa"}, "IPA"},
		{[]string{"lager"}, "Lager"},
		{[]string{"stout", "porter"}, "Stout"},
		{[]string{"craft", "local"}, "Craft Beer"},
	},
	enums.ProductCategorySake: {
		{[]string{"daiginjo"}, "Daiginjo"},
		{[]string{"ginjo"}, "Ginjo"},
		{[]string{"junmai"}, "Junmai"},
		{[]string{"nigori"}, "Nigori"},
	},
}

var subcategoryDefaults = map[enums.ProductCategory]string{
	enums.ProductCategoryWine:    "Table Wine",
	enums.ProductCategoryWhiskey: "Blended Whiskey",
	enums.ProductCategoryVodka:   "Standard Vodka",
	enums.ProductCategoryTequila: "Tequila",
	enums.ProductCategoryBeer:    "Beer",
	enums.ProductCategorySake:    "Sake",
}

// InferSubcategory derives a display subcategory from the product name. The
// keyword match is a plain substring test against the lower-cased name.
func InferSubcategory(name string, category enums.ProductCategory) string {
	lower := strings.ToLower(name)
	for _, rule := range subcategoryRules[category] {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.label
			}
		}
	}
	if def, ok := subcategoryDefaults[category]; ok {
		return def
	}
	return category.Display()
}

// Tokens that lead a product name without being part of the brand.
var brandFillerWords = map[string]struct{}{
	"nv":  {},
	"the": {},
	"a":   {},
	"an":  {},
}

var brandSplitPattern = regexp.MustCompile(`[\s-]+`)

// InferBrand guesses the brand from the leading tokens of the product name.
// Most feed rows put the brand first, occasionally behind a filler token.
func InferBrand(name string) string {
	tokens := brandSplitPattern.Split(strings.TrimSpace(name), -1)
	if len(tokens) == 0 || tokens[0] == "" {
		return "Unknown"
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	if _, filler := brandFillerWords[strings.ToLower(tokens[0])]; filler {
		if len(tokens) >= 3 {
			return tokens[1] + " " + tokens[2]
		}
		return tokens[1]
	}
	return tokens[0] + " " + tokens[1]
}

// Size patterns are ordered from most to least specific; the matched text is
// kept verbatim so "1.75 L" and "1.75L" both survive as written.
var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*ml)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:fl\s*oz|oz))`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:liter|litre|l))`),
	regexp.MustCompile(`(?i)(\d+-pack|\d+\s*pack)`),
}

// DefaultSize is assumed when the name carries no volume marker.
const DefaultSize = "750ml"

// InferSize extracts a volume or pack count from the product name.
func InferSize(name string) string {
	for _, pattern := range sizePatterns {
		if match := pattern.FindStringSubmatch(name); match != nil {
			return match[1]
		}
	}
	return DefaultSize
}
