package pages

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akoskinen/teamstalk/internal/types"
)

// TeamsPage extracts team links from a category's listing page. The page is
// server-rendered, so any Fetcher works.
type TeamsPage struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewTeamsPage creates the team listing page object.
func NewTeamsPage(fetcher Fetcher, logger *slog.Logger) *TeamsPage {
	return &TeamsPage{
		fetcher: fetcher,
		logger:  logger.With("component", "teams_page"),
	}
}

// Teams loads a category page and returns the teams listed on it.
func (p *TeamsPage) Teams(ctx context.Context, cat types.Category) ([]types.Team, error) {
	p.logger.Info("loading category page", "category", cat.Name, "url", cat.URL)
	html, err := p.fetcher.Fetch(ctx, cat.URL)
	if err != nil {
		return nil, err
	}

	teams, err := ParseTeams(html, cat)
	if err != nil {
		return nil, err
	}
	p.logger.Info("teams found", "category", cat.Name, "count", len(teams))
	return teams, nil
}

// ParseTeams extracts team records from a category page. Team links live in
// the third cell of the standings-table rows and point at /team/ URLs.
func ParseTeams(html string, cat types.Category) ([]types.Team, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse category page: %w", err)
	}

	if doc.Find("table").Length() == 0 {
		return nil, fmt.Errorf("%w: no tables on %s", types.ErrElementNotFound, cat.URL)
	}

	base, err := url.Parse(cat.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid category URL %q: %w", cat.URL, err)
	}

	var teams []types.Team
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		cells.Eq(2).Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if !strings.Contains(href, "/team/") {
				return
			}
			name := strings.TrimSpace(link.Text())
			if name == "" {
				return
			}
			teams = append(teams, types.Team{
				CategoryURL: cat.URL,
				TeamName:    name,
				TeamURL:     resolveURL(base, href),
			})
		})
	})
	return teams, nil
}
