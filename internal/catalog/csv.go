package catalog

import (
	"strings"

	"github.com/harborlight/storefront-backend/pkg/enums"
)

// Positional columns of the inventory feed.
const (
	colName = iota
	colCode
	colPrice
	colCategory
	feedColumnCount
)

// ParseProducts turns the raw inventory CSV into products. The parser is
// deliberately tolerant: rows with fewer than four fields, or with an empty
// name, code, or category, are dropped without an error. The price column is
// discarded; pricing is managed out of band, and a blank price cell does not
// drop the row.
func ParseProducts(csvContent, locationID string) []Product {
	lines := strings.Split(strings.TrimSpace(csvContent), "\n")
	if len(lines) < 2 {
		return nil
	}

	products := make([]Product, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitCSVLine(line)
		if len(fields) < feedColumnCount {
			continue
		}

		name := strings.TrimSpace(fields[colName])
		code := strings.TrimSpace(fields[colCode])
		category := enums.NormalizeCategory(fields[colCategory])
		if name == "" || code == "" || category == "" {
			continue
		}

		products = append(products, Product{
			ID:          string(category) + "-" + code,
			Code:        code,
			Name:        name,
			Category:    category,
			Subcategory: InferSubcategory(name, category),
			Brand:       InferBrand(name),
			Size:        InferSize(name),
			Price:       0,
			Image:       category.FallbackImage(),
			Description: name + " - Available in store.",
			Locations:   []string{locationID},
		})
	}

	return products
}

// splitCSVLine splits one CSV line into fields, honoring double-quoted
// fields with embedded commas and doubled escape quotes. Quotes never span
// lines; the feed does not use multi-line fields.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	fields = append(fields, current.String())
	return fields
}
