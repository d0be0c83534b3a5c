// Package scrape implements the three stage scrapers. Each is a pure
// transformation from the previous stage's records to its own, modulo the
// page navigation done through an injected page object.
package scrape

import (
	"context"
	"time"
)

// wait blocks for the configured delay before the next page navigation.
// Rate-limiting courtesy to the target server, not a retry mechanism.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
