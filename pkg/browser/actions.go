package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Navigate drives the page to url, waiting until the network is judged
// idle or the timeout elapses, and returns the navigation response.
func (s *Session) Navigate(url string, timeoutMs float64) (playwright.Response, error) {
	waitUntil := playwright.WaitUntilStateNetworkidle

	playwrightOpts := playwright.PageGotoOptions{
		WaitUntil: waitUntil,
	}
	if timeoutMs > 0 {
		playwrightOpts.Timeout = playwright.Float(timeoutMs)
	}

	resp, err := s.page.Goto(url, playwrightOpts)
	if err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	return resp, nil
}

// Fill fills an input element with the specified value.
func (s *Session) Fill(selector, value string) error {
	if err := s.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %q failed: %w", selector, err)
	}
	return nil
}

// Click clicks the element matching the selector.
func (s *Session) Click(selector string) error {
	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}
	return nil
}

// Press sends a single keypress to the element matching the selector.
func (s *Session) Press(selector, key string) error {
	if err := s.page.Press(selector, key); err != nil {
		return fmt.Errorf("press %q on %q failed: %w", key, selector, err)
	}
	return nil
}

// WaitVisible waits until an element matching the selector is visible.
// A timeout is returned as an error; callers that use the timeout as a
// branch signal treat it accordingly.
func (s *Session) WaitVisible(selector string, timeoutMs float64) error {
	return s.waitFor(selector, playwright.WaitForSelectorStateVisible, timeoutMs)
}

// WaitHidden waits until no visible element matches the selector. Absence
// of the element satisfies the wait.
func (s *Session) WaitHidden(selector string, timeoutMs float64) error {
	return s.waitFor(selector, playwright.WaitForSelectorStateHidden, timeoutMs)
}

func (s *Session) waitFor(selector string, state *playwright.WaitForSelectorState, timeoutMs float64) error {
	playwrightOpts := playwright.PageWaitForSelectorOptions{
		State: state,
	}
	if timeoutMs > 0 {
		playwrightOpts.Timeout = playwright.Float(timeoutMs)
	}

	if _, err := s.page.WaitForSelector(selector, playwrightOpts); err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page and discards its result.
func (s *Session) Evaluate(script string) error {
	if _, err := s.page.Evaluate(script); err != nil {
		return fmt.Errorf("evaluate failed: %w", err)
	}
	return nil
}

// OnResponse registers fn for every network response the page observes,
// reporting the response URL and status. Registration lasts for the life
// of the page.
func (s *Session) OnResponse(fn func(url string, status int)) {
	s.page.OnResponse(func(resp playwright.Response) {
		fn(resp.URL(), resp.Status())
	})
}

// VisibleText returns the rendered text of the current page with script,
// style and other non-rendered content stripped. The interstitial probe
// uses this because browser-generated warning pages expose no stable
// structure, only their text.
func (s *Session) VisibleText() (string, error) {
	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return ExtractVisibleText(content)
}
