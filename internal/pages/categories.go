package pages

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akoskinen/teamstalk/internal/browser"
	"github.com/akoskinen/teamstalk/internal/config"
	"github.com/akoskinen/teamstalk/internal/types"
)

// CategoriesPage drives the categories page: filter buttons are Vuetify
// toggles rendered by JavaScript, so this page always needs the browser.
type CategoriesPage struct {
	sess    *browser.Session
	url     string
	filters config.FilterConfig
	logger  *slog.Logger
}

// NewCategoriesPage creates the categories page object.
func NewCategoriesPage(sess *browser.Session, cfg *config.Config, logger *slog.Logger) *CategoriesPage {
	return &CategoriesPage{
		sess:    sess,
		url:     cfg.Scrape.CategoriesURL,
		filters: cfg.Filters,
		logger:  logger.With("component", "categories_page"),
	}
}

// Open navigates to the categories page.
func (p *CategoriesPage) Open(ctx context.Context) error {
	p.logger.Info("opening categories page", "url", p.url)
	return p.sess.Navigate(ctx, p.url)
}

// ApplyFilters clicks the configured filter buttons in order, closes any
// date picker or modal they trigger, and scrolls to load the result list.
func (p *CategoriesPage) ApplyFilters(ctx context.Context) error {
	values := p.filters.Values()
	for i, value := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.logger.Info("applying filter", "value", value, "step", fmt.Sprintf("%d/%d", i+1, len(values)))
		if err := p.sess.ClickValue(value); err != nil {
			return fmt.Errorf("apply filter %q: %w", value, err)
		}
	}

	p.sess.DismissOverlays()

	if err := p.sess.ScrollToBottom(); err != nil {
		p.logger.Warn("scroll failed, results may be incomplete", "error", err)
	}
	return nil
}

// Results extracts the filtered league/cup links from the results container.
func (p *CategoriesPage) Results(ctx context.Context) ([]types.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html, err := p.sess.HTML()
	if err != nil {
		return nil, err
	}
	return ParseCategories(html, p.url)
}

// ParseCategories extracts category records from the categories page HTML.
// Only anchors under the results container pointing at /category/ count.
func ParseCategories(html, baseURL string) ([]types.Category, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse categories page: %w", err)
	}

	results := doc.Find("#results")
	if results.Length() == 0 {
		return nil, types.ErrNoResults
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	var categories []types.Category
	results.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "/category/") {
			return
		}
		name := categoryName(sel.Text())
		if name == "" {
			return
		}
		categories = append(categories, types.Category{
			Name: name,
			URL:  resolveURL(base, href),
		})
	})
	return categories, nil
}

// categoryName picks the category name out of a result card's text.
// Multi-line cards repeat the filter heading on the first line, with the
// category name below it; plain links carry the name only.
func categoryName(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	switch {
	case len(lines) >= 2:
		return lines[1]
	case len(lines) == 1:
		return lines[0]
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
