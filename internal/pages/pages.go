// Package pages holds the page objects for the three page types of the
// results service: the categories page, the team listing page, and the team
// players (contact) page. DOM extraction is kept in pure parse functions so
// it can be exercised without a browser.
package pages

import "context"

// Fetcher loads a page and returns its HTML. Implemented by both the
// browser session (rendered DOM) and the plain HTTP client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
