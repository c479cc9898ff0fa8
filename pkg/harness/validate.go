package harness

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/playwright-community/playwright-go"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/logging"
)

// Readiness selectors. Different pages render their primary content with
// different strategies, so readiness is whichever signal settles first:
// a data table appears, a grid container appears, or the loading spinner
// goes away.
const (
	selContentTable   = `table`
	selContentGrid    = `.grid-container`
	selLoadingSpinner = `.loading-indicator`
)

// pageDriver is the page surface the validator drives, implemented by
// *browser.Session. Navigation reports the main-resource response, which
// can be nil without an error on same-document navigations.
type pageDriver interface {
	Navigate(url string, timeoutMs float64) (playwright.Response, error)
	WaitVisible(selector string, timeoutMs float64) error
	WaitHidden(selector string, timeoutMs float64) error
	OnResponse(fn func(url string, status int))
}

// interstitialClearer re-checks for the TLS warning after a navigation.
type interstitialClearer interface {
	Clear()
}

// responseLog accumulates HTTP error descriptions observed while one URL
// is under validation. It is discarded after producing that URL's outcome.
type responseLog struct {
	mu      sync.Mutex
	entries []string
}

func (r *responseLog) add(entry string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *responseLog) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// responseFilter decides which observed responses count against a page:
// only responses from the target's own host, with an error status, not
// exempted by an ignore pattern. Third-party asset failures never count.
type responseFilter struct {
	ignore []glob.Glob
}

func newResponseFilter(patterns []string) (*responseFilter, error) {
	f := &responseFilter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore_responses pattern %q: %w", pattern, err)
		}
		f.ignore = append(f.ignore, g)
	}
	return f, nil
}

// errorEntry formats the log entry for a response, or reports false when
// the response does not count against the page.
func (f *responseFilter) errorEntry(targetHost, respURL string, status int) (string, bool) {
	if status < 400 {
		return "", false
	}
	if hostOf(respURL) != targetHost {
		return "", false
	}
	for _, g := range f.ignore {
		if g.Match(respURL) {
			return "", false
		}
	}
	return fmt.Sprintf("HTTP %d on %s", status, respURL), true
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Validator checks that each target page loads its primary content without
// transport or server errors.
type Validator struct {
	driver       pageDriver
	log          logging.Log
	interstitial interstitialClearer
	timeouts     config.Timeouts
	filter       *responseFilter

	// The response listener is registered once and forwards to whichever
	// collector is armed for the URL currently under validation. Between
	// validations it is inert.
	mu         sync.Mutex
	armed      *responseLog
	targetHost string
}

// NewValidator compiles the ignore patterns and registers the response
// listener on the driver's page. Collection for a URL starts before its
// navigation so early failures are not missed.
func NewValidator(driver pageDriver, interstitial interstitialClearer, log logging.Log, cfg *config.Config) (*Validator, error) {
	filter, err := newResponseFilter(cfg.IgnoreResponses)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		driver:       driver,
		log:          log,
		interstitial: interstitial,
		timeouts:     cfg.Timeouts,
		filter:       filter,
	}

	driver.OnResponse(v.record)

	return v, nil
}

func (v *Validator) record(respURL string, status int) {
	v.mu.Lock()
	armed, host := v.armed, v.targetHost
	v.mu.Unlock()

	if armed == nil {
		return
	}
	if entry, counts := v.filter.errorEntry(host, respURL, status); counts {
		armed.add(entry)
	}
}

func (v *Validator) arm(targetHost string) *responseLog {
	rl := &responseLog{}
	v.mu.Lock()
	v.armed = rl
	v.targetHost = targetHost
	v.mu.Unlock()
	return rl
}

func (v *Validator) disarm() {
	v.mu.Lock()
	v.armed = nil
	v.targetHost = ""
	v.mu.Unlock()
}

// Validate navigates to target and produces its outcome. Every per-URL
// failure is converted into the outcome; nothing escapes to the caller, so
// the run always continues with the next URL.
func (v *Validator) Validate(target string) PageOutcome {
	observed := v.arm(hostOf(target))
	defer v.disarm()

	resp, err := v.driver.Navigate(target, v.timeouts.NavigationMs)
	if err != nil {
		return NewPageOutcome(target, false, err.Error())
	}

	// The interstitial can reappear on any fresh navigation.
	v.interstitial.Clear()

	// Same-document navigations carry no main-resource response at all;
	// a smoke-test target that resolves without one did not load.
	if resp == nil {
		return NewPageOutcome(target, false, fmt.Sprintf("no navigation response for %s", target))
	}

	if status := resp.Status(); status >= 400 {
		return NewPageOutcome(target, false, fmt.Sprintf("HTTP %d on %s", status, target))
	}

	budget := time.Duration(v.timeouts.ReadinessMs) * time.Millisecond
	winner, err := awaitFirst(v.readinessProbes(), budget)
	if err != nil {
		errs := append([]string{fmt.Sprintf("timed out waiting for content on %s: %v", target, err)}, observed.snapshot()...)
		return NewPageOutcome(target, false, errs...)
	}
	v.log.Infof("content ready on %s (signal: %s)", target, winner)

	// Let late-arriving background error responses land before reading the
	// collected log.
	time.Sleep(time.Duration(v.timeouts.SettleMs) * time.Millisecond)

	if errs := observed.snapshot(); len(errs) > 0 {
		return NewPageOutcome(target, false, errs...)
	}
	return NewPageOutcome(target, true)
}

// readinessProbe is one "content has rendered" signal.
type readinessProbe struct {
	name string
	wait func(timeoutMs float64) error
}

func (v *Validator) readinessProbes() []readinessProbe {
	return []readinessProbe{
		{name: "table", wait: func(t float64) error { return v.driver.WaitVisible(selContentTable, t) }},
		{name: "grid", wait: func(t float64) error { return v.driver.WaitVisible(selContentGrid, t) }},
		{name: "spinner gone", wait: func(t float64) error { return v.driver.WaitHidden(selLoadingSpinner, t) }},
	}
}

type probeResult struct {
	name string
	err  error
}

// awaitFirst races the probes with a shared budget and returns the name of
// the first to succeed. Each probe is bounded by the same budget, so the
// losers terminate on their own; the buffered channel lets their results
// be discarded without blocking. Once every probe has reported failure the
// race ends early instead of idling out the rest of the budget.
func awaitFirst(probes []readinessProbe, budget time.Duration) (string, error) {
	results := make(chan probeResult, len(probes))
	timeoutMs := float64(budget.Milliseconds())

	for _, probe := range probes {
		go func(p readinessProbe) {
			results <- probeResult{name: p.name, err: p.wait(timeoutMs)}
		}(probe)
	}

	timer := time.NewTimer(budget)
	defer timer.Stop()

	for failed := 0; failed < len(probes); {
		select {
		case res := <-results:
			if res.err == nil {
				return res.name, nil
			}
			failed++
		case <-timer.C:
			return "", fmt.Errorf("no readiness signal within %s", budget)
		}
	}
	return "", fmt.Errorf("no readiness signal: all probes failed")
}
