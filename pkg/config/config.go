// Package config loads and validates the smoke-test run configuration.
//
// Configuration comes from a YAML file; command line flags in cmd/smoketest
// may override individual fields. Once loaded, the configuration is treated
// as immutable for the lifetime of the run.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Default timeout values, in milliseconds.
const (
	DefaultNavigationTimeoutMs = 60000.0
	DefaultReadinessTimeoutMs  = 30000.0
	DefaultSettleDelayMs       = 2000.0
	DefaultLoginProbeTimeoutMs = 5000.0
	DefaultConsentTimeoutMs    = 3000.0
)

// DefaultReportPath is where the run report is written unless overridden.
const DefaultReportPath = "test-results.json"

// Credentials is the identifier/secret pair used for the form login.
type Credentials struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Timeouts holds the fixed timeout constants for a run, in milliseconds.
type Timeouts struct {
	// NavigationMs bounds each page navigation, including the wait for the
	// network to go idle.
	NavigationMs float64 `yaml:"navigation_ms" json:"navigation_ms"`

	// ReadinessMs is the shared budget for the content-readiness race.
	ReadinessMs float64 `yaml:"readiness_ms" json:"readiness_ms"`

	// SettleMs is the short delay that lets late-arriving background
	// responses land before the error log is read.
	SettleMs float64 `yaml:"settle_ms" json:"settle_ms"`

	// LoginProbeMs bounds the probe for the new sign-in layout. The probe
	// timing out selects the legacy layout; it is not an error.
	LoginProbeMs float64 `yaml:"login_probe_ms" json:"login_probe_ms"`

	// ConsentMs bounds the probe for the cookie consent banner.
	ConsentMs float64 `yaml:"consent_ms" json:"consent_ms"`
}

// Config is the immutable input for one smoke-test run.
type Config struct {
	// LoginURL is the canonical sign-in page of the application under test.
	LoginURL string `yaml:"login_url" json:"login_url"`

	// URLs are the target pages to validate. Order is meaningful: the run
	// report preserves it for downstream consumption.
	URLs []string `yaml:"urls" json:"urls"`

	Credentials Credentials `yaml:"credentials" json:"credentials"`
	Timeouts    Timeouts    `yaml:"timeouts" json:"timeouts"`

	// IgnoreResponses are glob patterns matched against response URLs.
	// Matching responses are never counted against a page, even when they
	// come from the application's own host (health probes, analytics
	// endpoints that 4xx by design).
	IgnoreResponses []string `yaml:"ignore_responses" json:"ignore_responses"`

	// ReportPath is where the JSON run report is written.
	ReportPath string `yaml:"report_path" json:"report_path"`

	// Headless runs the browser without a window. The manual bypass of the
	// certificate interstitial is not possible headless.
	Headless bool `yaml:"headless" json:"headless"`
}

// DefaultConfig returns a configuration with every tunable at its default.
// The URL list and credentials have no defaults and must come from the
// config file.
func DefaultConfig() *Config {
	return &Config{
		Timeouts: Timeouts{
			NavigationMs: DefaultNavigationTimeoutMs,
			ReadinessMs:  DefaultReadinessTimeoutMs,
			SettleMs:     DefaultSettleDelayMs,
			LoginProbeMs: DefaultLoginProbeTimeoutMs,
			ConsentMs:    DefaultConsentTimeoutMs,
		},
		ReportPath: DefaultReportPath,
	}
}

// Load reads the YAML configuration at path on top of the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	// Zeroed timeouts in the file fall back to defaults; a run with a zero
	// budget anywhere can only hang or fail spuriously.
	cfg.Timeouts.applyDefaults()
	if cfg.ReportPath == "" {
		cfg.ReportPath = DefaultReportPath
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validationErr)
	}

	return cfg, nil
}

func (t *Timeouts) applyDefaults() {
	if t.NavigationMs <= 0 {
		t.NavigationMs = DefaultNavigationTimeoutMs
	}
	if t.ReadinessMs <= 0 {
		t.ReadinessMs = DefaultReadinessTimeoutMs
	}
	if t.SettleMs <= 0 {
		t.SettleMs = DefaultSettleDelayMs
	}
	if t.LoginProbeMs <= 0 {
		t.LoginProbeMs = DefaultLoginProbeTimeoutMs
	}
	if t.ConsentMs <= 0 {
		t.ConsentMs = DefaultConsentTimeoutMs
	}
}

// Validate checks that the configuration describes a runnable smoke test.
func (c *Config) Validate() error {
	if c.LoginURL == "" {
		return fmt.Errorf("login_url is required")
	}
	if err := validateURL(c.LoginURL); err != nil {
		return fmt.Errorf("login_url: %w", err)
	}

	if len(c.URLs) == 0 {
		return fmt.Errorf("at least one target URL is required")
	}
	for i, target := range c.URLs {
		if err := validateURL(target); err != nil {
			return fmt.Errorf("urls[%d]: %w", i, err)
		}
	}

	if c.Credentials.Username == "" || c.Credentials.Password == "" {
		return fmt.Errorf("credentials.username and credentials.password are required")
	}

	return nil
}

// validateURL requires a fully qualified http(s) URL with a host.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
