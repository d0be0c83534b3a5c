package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/akoskinen/teamstalk/internal/types"
)

// TeamLister is the page object contract for the teams stage.
type TeamLister interface {
	Teams(ctx context.Context, cat types.Category) ([]types.Team, error)
}

// Teams is the stage 2 scraper: one page navigation per input category.
type Teams struct {
	page   TeamLister
	delay  time.Duration
	logger *slog.Logger
}

// NewTeams creates the teams stage scraper.
func NewTeams(page TeamLister, delay time.Duration, logger *slog.Logger) *Teams {
	return &Teams{
		page:   page,
		delay:  delay,
		logger: logger.With("component", "teams_scraper"),
	}
}

// Scrape visits every category page and collects its team links. A failed
// category is skipped with a warning; it never aborts the stage.
func (s *Teams) Scrape(ctx context.Context, categories []types.Category) ([]types.Team, error) {
	var teams []types.Team
	skipped := 0

	for i, cat := range categories {
		if err := wait(ctx, s.delay); err != nil {
			return nil, err
		}
		s.logger.Info("processing category",
			"category", cat.Name,
			"progress", i+1,
			"total", len(categories),
		)

		found, err := s.page.Teams(ctx, cat)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			skipped++
			extractionErr := &types.ExtractionError{URL: cat.URL, Err: err}
			s.logger.Warn("category skipped", "category", cat.Name, "error", extractionErr)
			continue
		}
		teams = append(teams, found...)
	}

	if skipped > 0 {
		s.logger.Warn("teams stage finished with skipped categories",
			"skipped", skipped,
			"total", len(categories),
		)
	}
	s.logger.Info("teams stage complete", "teams", len(teams), "categories", len(categories))
	return teams, nil
}
