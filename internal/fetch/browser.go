package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"careerwatch/internal/config"
)

// Browser is a single long-lived headless browser session, reused across
// scrape cycles and shared sequentially by all browser-mode sources. The
// owner must call Close when the run loop exits.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	timeout time.Duration
}

func NewBrowser(userAgent string, timeout time.Duration) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Browser{
		pw:      pw,
		browser: browser,
		page:    page,
		timeout: timeout,
	}, nil
}

// Fetch navigates the shared page to the source URL, blocks until the
// readiness selector appears or the timeout elapses, then returns the fully
// rendered markup. Navigation mutates the shared page state.
func (b *Browser) Fetch(ctx context.Context, src config.Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if src.Referer != "" {
		if err := b.page.SetExtraHTTPHeaders(map[string]string{"Referer": src.Referer}); err != nil {
			return "", &FetchError{Err: err}
		}
	}

	timeoutMs := playwright.Float(float64(b.timeout.Milliseconds()))
	if _, err := b.page.Goto(src.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   timeoutMs,
	}); err != nil {
		return "", &FetchError{Err: fmt.Errorf("goto %s: %w", src.URL, err)}
	}

	if _, err := b.page.WaitForSelector(src.ReadySelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: timeoutMs,
	}); err != nil {
		return "", &FetchError{Err: fmt.Errorf("readiness %q: %w", src.ReadySelector, err)}
	}

	markup, err := b.page.Content()
	if err != nil {
		return "", &FetchError{Err: err}
	}
	return markup, nil
}

func (b *Browser) Close() error {
	return errors.Join(b.browser.Close(), b.pw.Stop())
}
