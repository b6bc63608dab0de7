package images

import "time"

// CacheEntry records one barcode lookup result. Entries never expire; they
// are removed only when the product code leaves the inventory feed. A failed
// lookup is cached too so the barcode is not queried again.
type CacheEntry struct {
	Code      string  `gorm:"primaryKey;size:64" json:"code"`
	ImageURL  *string `gorm:"size:2048" json:"image_url"`
	Found     bool    `json:"found"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the explicit table name.
func (CacheEntry) TableName() string {
	return "image_cache_entries"
}

// Stats summarizes the image cache contents.
type Stats struct {
	TotalEntries  int64 `json:"total_entries"`
	WithImages    int64 `json:"with_images"`
	WithoutImages int64 `json:"without_images"`
}
