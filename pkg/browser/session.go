// Package browser owns the Playwright session used for a smoke-test run:
// one browser process, one isolated context with TLS certificate validation
// relaxed, and one page handle reused for every navigation.
package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Session owns the browser process, the isolated context and the single
// page used for the whole run. It has exactly one owner (the runner) and
// is closed exactly once on every exit path.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	closeOnce sync.Once
}

// Launch starts the Playwright driver, launches Chromium and prepares the
// context and page for the run. The context accepts otherwise-fatal TLS
// certificate errors because the target is a local/test deployment with a
// self-signed certificate. Launch failure is fatal to the run.
func Launch(opts LaunchOptions) (*Session, error) {
	if opts.NavigationTimeoutMs <= 0 {
		opts.NavigationTimeoutMs = DefaultNavigationTimeoutMs
	}

	// Install and run Playwright quietly; driver output would interleave
	// with the run log.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
		Viewport: &playwright.Size{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	context.SetDefaultNavigationTimeout(opts.NavigationTimeoutMs)
	page.SetDefaultTimeout(opts.NavigationTimeoutMs)

	return &Session{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
	}, nil
}

// Page exposes the underlying page for listener registration.
func (s *Session) Page() playwright.Page {
	return s.page
}

// CurrentURL returns the page's current address.
func (s *Session) CurrentURL() string {
	return s.page.URL()
}

// Close releases the page, context, browser and Playwright driver, exactly
// once. Teardown always runs to completion; individual errors are combined
// into the returned error.
func (s *Session) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		if err := s.page.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.context.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.browser.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("errors closing session: %v", errs)
	}
	return nil
}
