package pages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/akoskinen/teamstalk/internal/types"
)

// ContactPage extracts the officials table from a team's players page.
type ContactPage struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewContactPage creates the contact page object.
func NewContactPage(fetcher Fetcher, logger *slog.Logger) *ContactPage {
	return &ContactPage{
		fetcher: fetcher,
		logger:  logger.With("component", "contact_page"),
	}
}

// Officials loads a team's players page and returns every officials-table
// row that carries contact details. Role filtering happens in the scraper.
func (p *ContactPage) Officials(ctx context.Context, teamURL string) ([]types.Official, error) {
	playersURL := PlayersURL(teamURL)
	p.logger.Info("loading players page", "url", playersURL)

	source, err := p.fetcher.Fetch(ctx, playersURL)
	if err != nil {
		return nil, err
	}

	officials, err := ParseOfficials(source)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("officials found", "url", playersURL, "count", len(officials))
	return officials, nil
}

// PlayersURL rewrites a team info URL into its players page URL.
func PlayersURL(teamURL string) string {
	if strings.Contains(teamURL, "/info") {
		return strings.Replace(teamURL, "/info", "/players", 1)
	}
	return strings.TrimRight(teamURL, "/") + "/players"
}

// ParseOfficials extracts officials from the active-officials table of a
// players page. An official counts only with a name and a mailto: address;
// the role label comes from the first cell of the row.
func ParseOfficials(source string) ([]types.Official, error) {
	doc, err := htmlquery.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse players page: %w", err)
	}

	section := htmlquery.FindOne(doc, "//*[contains(@class,'activeofficials')]")
	if section == nil {
		return nil, fmt.Errorf("%w: officials section", types.ErrElementNotFound)
	}

	rows := htmlquery.Find(section, ".//table//tr")
	var officials []types.Official
	for _, row := range rows {
		cells := htmlquery.Find(row, "./td")
		if len(cells) < 2 {
			continue
		}
		role := strings.TrimSpace(htmlquery.InnerText(cells[0]))

		nameCell := htmlquery.FindOne(row, "./td[contains(@class,'namefield')]")
		if nameCell == nil {
			continue
		}

		name, email, phone := contactDetails(nameCell)
		if name == "" || email == "" {
			continue
		}

		officials = append(officials, types.Official{
			Role:  role,
			Name:  name,
			Email: email,
			Phone: phone,
		})
	}
	return officials, nil
}

// contactDetails pulls the person's name and contact links out of a
// namefield cell. mailto: and tel: anchors carry the contact details; the
// first remaining anchor carries the name, with the cell's own text as a
// fallback for rows rendered without a name link.
func contactDetails(cell *html.Node) (name, email, phone string) {
	for _, a := range htmlquery.Find(cell, ".//a") {
		href := htmlquery.SelectAttr(a, "href")
		switch {
		case strings.HasPrefix(href, "mailto:"):
			email = strings.TrimPrefix(href, "mailto:")
		case strings.HasPrefix(href, "tel:"):
			phone = strings.TrimPrefix(href, "tel:")
		default:
			if name == "" {
				name = strings.Join(strings.Fields(htmlquery.InnerText(a)), " ")
			}
		}
	}
	if name == "" {
		name = directText(cell)
	}
	return name, email, phone
}

// directText collects the text of a node while skipping nested anchors,
// which hold the contact links rather than the person's name.
func directText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "a" {
				continue
			}
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
