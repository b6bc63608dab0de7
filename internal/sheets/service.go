package sheets

import (
	"context"
	"fmt"

	"github.com/harborlight/storefront-backend/pkg/logger"
)

// Service exposes store content backed by spreadsheet tabs. Every read
// degrades to an empty list when the sheet is unreachable; store content is
// decorative and must never take the storefront down.
type Service struct {
	client        *Client
	logg          *logger.Logger
	locationsGID  string
	categoriesGID string
	faqsGID       string
}

// NewService builds the sheet-backed content service.
func NewService(client *Client, locationsGID, categoriesGID, faqsGID string, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("sheet client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		client:        client,
		logg:          logg,
		locationsGID:  locationsGID,
		categoriesGID: categoriesGID,
		faqsGID:       faqsGID,
	}, nil
}

// Locations lists the physical stores.
func (s *Service) Locations(ctx context.Context) []Location {
	rows, err := s.client.FetchRows(ctx, s.locationsGID)
	if err != nil {
		s.logg.Error(ctx, "fetch locations sheet", err)
		return []Location{}
	}
	locations := make([]Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, locationFromRow(row))
	}
	return locations
}

// Categories lists the curated category tiles.
func (s *Service) Categories(ctx context.Context) []Category {
	rows, err := s.client.FetchRows(ctx, s.categoriesGID)
	if err != nil {
		s.logg.Error(ctx, "fetch categories sheet", err)
		return []Category{}
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryFromRow(row))
	}
	return categories
}

// FAQs lists the help content.
func (s *Service) FAQs(ctx context.Context) []FAQ {
	rows, err := s.client.FetchRows(ctx, s.faqsGID)
	if err != nil {
		s.logg.Error(ctx, "fetch faqs sheet", err)
		return []FAQ{}
	}
	faqs := make([]FAQ, 0, len(rows))
	for _, row := range rows {
		faqs = append(faqs, faqFromRow(row))
	}
	return faqs
}
