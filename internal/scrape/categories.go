package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/akoskinen/teamstalk/internal/types"
)

// CategoriesPage is the page object contract for the categories stage.
type CategoriesPage interface {
	Open(ctx context.Context) error
	ApplyFilters(ctx context.Context) error
	Results(ctx context.Context) ([]types.Category, error)
}

// Categories is the stage 1 scraper: one filtered page, many category links.
type Categories struct {
	page   CategoriesPage
	delay  time.Duration
	logger *slog.Logger
}

// NewCategories creates the categories stage scraper.
func NewCategories(page CategoriesPage, delay time.Duration, logger *slog.Logger) *Categories {
	return &Categories{
		page:   page,
		delay:  delay,
		logger: logger.With("component", "categories_scraper"),
	}
}

// Scrape opens the categories page, applies the configured filters, and
// collects the category links. The whole stage is a single page, so any
// failure here is fatal for the stage.
func (s *Categories) Scrape(ctx context.Context) ([]types.Category, error) {
	if err := wait(ctx, s.delay); err != nil {
		return nil, err
	}
	if err := s.page.Open(ctx); err != nil {
		return nil, err
	}
	if err := s.page.ApplyFilters(ctx); err != nil {
		return nil, err
	}

	categories, err := s.page.Results(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("categories stage complete", "categories", len(categories))
	return categories, nil
}
