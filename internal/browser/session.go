package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/akoskinen/teamstalk/internal/config"
	"github.com/akoskinen/teamstalk/internal/types"
)

// Session owns the single headless browser used by the whole pipeline.
// It is acquired at pipeline start, shared by all stages, and must be
// closed on every exit path. One page at a time, no parallel navigation.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
	logger  *slog.Logger
	closed  bool
}

// New launches a Chromium instance and opens the session's single page.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", cfg.Browser.WindowSize)
	}

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(launchURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	var page *rod.Page
	if cfg.Browser.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	s := &Session{
		browser: b,
		page:    page,
		timeout: cfg.Scrape.NavigationTimeout,
		logger:  logger.With("component", "browser"),
	}

	s.logger.Info("browser session ready",
		"headless", cfg.Browser.Headless,
		"stealth", cfg.Browser.Stealth,
	)
	return s, nil
}

// Navigate loads a URL on the session page, waits for it to settle, and
// dismisses the cookie consent dialog when present.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return types.ErrBrowserClosed
	}

	page := s.page.Context(ctx)
	if err := page.Timeout(s.timeout).Navigate(url); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", types.ErrNavigationTimeout, url)
		}
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	if err := page.Timeout(s.timeout).WaitStable(300 * time.Millisecond); err != nil {
		s.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	s.dismissConsent()
	return nil
}

// HTML returns the current page source.
func (s *Session) HTML() (string, error) {
	if s.closed {
		return "", types.ErrBrowserClosed
	}
	return s.page.HTML()
}

// Fetch implements the page-object Fetcher contract: navigate then return
// the rendered HTML.
func (s *Session) Fetch(ctx context.Context, url string) (string, error) {
	if err := s.Navigate(ctx, url); err != nil {
		return "", err
	}
	return s.HTML()
}

// ClickValue clicks the filter button carrying the given value attribute.
// The element is scrolled into view first; a JS click is the fallback for
// buttons hidden behind Vuetify overlays.
func (s *Session) ClickValue(value string) error {
	if s.closed {
		return types.ErrBrowserClosed
	}

	selector := fmt.Sprintf("button[value=%q]", value)
	el, err := s.page.Timeout(10 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrElementNotFound, selector)
	}
	if err := el.ScrollIntoView(); err != nil {
		s.logger.Debug("scroll into view failed", "selector", selector, "error", err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.logger.Debug("native click failed, trying JS click", "selector", selector, "error", err)
		if _, err := el.Eval(`() => this.click()`); err != nil {
			return fmt.Errorf("click %s: %w", selector, err)
		}
	}
	return nil
}

// DismissOverlays closes a date picker or modal left open after filtering.
func (s *Session) DismissOverlays() {
	if s.closed {
		return
	}
	selectors := []string{
		"button.v-dialog__close",
		"button[aria-label='Close']",
		"i.v-icon.mdi-close",
		".v-overlay__scrim",
	}
	for _, sel := range selectors {
		has, el, err := s.page.Has(sel)
		if err != nil || !has {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			s.logger.Debug("overlay dismissed", "selector", sel)
			return
		}
	}
}

// ScrollToBottom scrolls the page to trigger lazy-loaded results.
func (s *Session) ScrollToBottom() error {
	if s.closed {
		return types.ErrBrowserClosed
	}
	_, err := s.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

// Close shuts down the browser. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Info("closing browser session")
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}

// dismissConsent handles the Cybot cookie consent dialog: allow-all first,
// then decline, then the banner close button.
func (s *Session) dismissConsent() {
	has, _, err := s.page.Has("#CybotCookiebotDialog")
	if err != nil || !has {
		return
	}

	buttons := []string{
		"#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll",
		"#CybotCookiebotDialogBodyButtonDecline",
		".CybotCookiebotBannerCloseButton",
	}
	for _, sel := range buttons {
		has, el, err := s.page.Has(sel)
		if err != nil || !has {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			s.logger.Debug("cookie consent dismissed", "selector", sel)
			return
		}
	}
	s.logger.Warn("cookie consent dialog present but not dismissed")
}
