// Package harness implements the smoke-test run: TLS interstitial
// handling, adaptive form login, per-page validation and the persisted run
// report.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
)

// PageOutcome is the verdict for a single validated URL.
type PageOutcome struct {
	URL     string   `json:"url"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// NewPageOutcome builds an outcome whose Errors slice is always non-nil,
// so an error-free page serialises as "errors": [].
func NewPageOutcome(url string, success bool, errs ...string) PageOutcome {
	outcome := PageOutcome{
		URL:     url,
		Success: success,
		Errors:  []string{},
	}
	outcome.Errors = append(outcome.Errors, errs...)
	return outcome
}

// FailureReport is the degraded report shape written when the run aborts
// before page validation: every configured URL is marked failed with the
// single causing error.
type FailureReport struct {
	Error string        `json:"error"`
	URLs  []PageOutcome `json:"urls"`
}

// WriteReport persists the ordered outcomes as pretty-printed JSON. The
// outcome order matches the configured URL order; downstream consumers
// rely on it.
func WriteReport(path string, outcomes []PageOutcome) error {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFailureReport persists the degraded shape covering every configured
// URL with the causing error repeated per URL.
func WriteFailureReport(path string, urls []string, cause error) error {
	report := FailureReport{
		Error: cause.Error(),
		URLs:  make([]PageOutcome, 0, len(urls)),
	}
	for _, u := range urls {
		report.URLs = append(report.URLs, NewPageOutcome(u, false, cause.Error()))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode failure report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write failure report: %w", err)
	}
	return nil
}
