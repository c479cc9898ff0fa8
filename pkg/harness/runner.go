package harness

import (
	"fmt"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/browser"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/logging"
)

// Runner executes one full smoke-test run: session bootstrap, login,
// strictly sequential per-URL validation and report persistence.
type Runner struct {
	cfg *config.Config
	log *logging.Logger
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run drives the whole smoke test. The browser session is closed on every
// exit path. Bootstrap and login failures abort the run and write the
// degraded report covering every configured URL; per-URL failures only
// degrade that URL's outcome.
func (r *Runner) Run() error {
	sess, err := browser.Launch(browser.LaunchOptions{
		Headless:            r.cfg.Headless,
		NavigationTimeoutMs: r.cfg.Timeouts.NavigationMs,
	})
	if err != nil {
		return r.abort(err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			r.log.Warnf("browser teardown: %v", cerr)
		}
	}()

	interstitial := NewInterstitialHandler(sess, r.log.WithComponent("interstitial"), r.cfg)

	r.log.Infof("navigating to sign-in page %s", r.cfg.LoginURL)
	if _, err := sess.Navigate(r.cfg.LoginURL, r.cfg.Timeouts.NavigationMs); err != nil {
		return r.abort(fmt.Errorf("login error: %w", err))
	}
	interstitial.Clear()

	auth := NewAuthenticator(sess, r.log.WithComponent("login"), r.cfg)
	if err := auth.Login(); err != nil {
		return r.abort(err)
	}

	validator, err := NewValidator(sess, interstitial, r.log.WithComponent("validate"), r.cfg)
	if err != nil {
		return r.abort(err)
	}

	outcomes := make([]PageOutcome, 0, len(r.cfg.URLs))
	for _, target := range r.cfg.URLs {
		r.log.Infof("validating %s", target)
		outcome := validator.Validate(target)

		r.log.Infof("%s", logging.BannerLine(outcome.URL, outcome.Success))
		for _, msg := range outcome.Errors {
			r.log.Errorf("  %s", msg)
		}
		outcomes = append(outcomes, outcome)
	}

	if err := WriteReport(r.cfg.ReportPath, outcomes); err != nil {
		r.log.Errorf("%v", err)
		return err
	}
	r.log.Infof("report written to %s", r.cfg.ReportPath)
	return nil
}

// abort writes the degraded report marking every configured URL failed
// with the causing error, then surfaces that error to the caller.
func (r *Runner) abort(cause error) error {
	r.log.Errorf("run aborted: %v", cause)
	if werr := WriteFailureReport(r.cfg.ReportPath, r.cfg.URLs, cause); werr != nil {
		r.log.Errorf("could not write failure report: %v", werr)
	}
	return cause
}
