package harness

import (
	"fmt"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/logging"
)

// LoginUIVariant identifies which of the two mutually exclusive sign-in
// layouts the application is serving. Exactly one variant path executes
// per run.
type LoginUIVariant int

const (
	// VariantNew is the redesigned two-step sign-in flow (email first,
	// password on a second step).
	VariantNew LoginUIVariant = iota

	// VariantOld is the legacy single-form sign-in flow, submitted with an
	// Enter keypress rather than a button.
	VariantOld
)

func (v LoginUIVariant) String() string {
	if v == VariantNew {
		return "new"
	}
	return "old"
}

// Selectors for the consent banner and the two sign-in layouts. The
// password-step submit is scoped to its form so it cannot match other
// buttons on the page.
const (
	selConsentAccept = `button:has-text("Accept")`

	selNewEmail    = `input[data-testid="email-input"]`
	selNewNext     = `button[type="submit"]`
	selNewPassword = `input[data-testid="password-input"]`
	selNewSignIn   = `form[data-testid="password-form"] button[type="submit"]`

	selOldUsername = `input[name="username"]`
	selOldPassword = `input[name="password"]`
)

// loginDriver is the narrow page surface the authenticator needs. It is
// satisfied by *browser.Session; tests substitute a scripted fake.
type loginDriver interface {
	WaitVisible(selector string, timeoutMs float64) error
	Fill(selector, value string) error
	Click(selector string) error
	Press(selector, key string) error
}

// Authenticator drives the form-based login, adapting to whichever sign-in
// layout the application presents.
type Authenticator struct {
	driver loginDriver
	log    logging.Log
	creds  config.Credentials

	probeTimeoutMs   float64
	consentTimeoutMs float64
}

// NewAuthenticator wires the authenticator to the run's session.
func NewAuthenticator(driver loginDriver, log logging.Log, cfg *config.Config) *Authenticator {
	return &Authenticator{
		driver:           driver,
		log:              log,
		creds:            cfg.Credentials,
		probeTimeoutMs:   cfg.Timeouts.LoginProbeMs,
		consentTimeoutMs: cfg.Timeouts.ConsentMs,
	}
}

// Login dismisses the consent banner if present, detects the sign-in
// layout and drives the matching form sequence. Any fill or submit failure
// is fatal to the run and surfaces to the top-level handler.
func (a *Authenticator) Login() error {
	a.dismissConsent()

	variant := a.detectVariant()
	a.log.Infof("sign-in layout detected: %s UI", variant)

	var err error
	switch variant {
	case VariantNew:
		err = a.loginNewUI()
	case VariantOld:
		err = a.loginOldUI()
	}
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

// dismissConsent clicks the cookie banner's accept control when present.
// Absence is the normal case, not an error.
func (a *Authenticator) dismissConsent() {
	if err := a.driver.WaitVisible(selConsentAccept, a.consentTimeoutMs); err != nil {
		return
	}
	if err := a.driver.Click(selConsentAccept); err != nil {
		a.log.Warnf("could not dismiss consent banner: %v", err)
	}
}

// detectVariant probes for the new-UI email field. The probe timing out
// selects the legacy layout; it is the branch signal, not an error.
func (a *Authenticator) detectVariant() LoginUIVariant {
	if err := a.driver.WaitVisible(selNewEmail, a.probeTimeoutMs); err != nil {
		return VariantOld
	}
	return VariantNew
}

func (a *Authenticator) loginNewUI() error {
	if err := a.driver.Click(selNewEmail); err != nil {
		return err
	}
	if err := a.driver.Fill(selNewEmail, a.creds.Username); err != nil {
		return err
	}
	if err := a.driver.Click(selNewNext); err != nil {
		return err
	}
	if err := a.driver.Fill(selNewPassword, a.creds.Password); err != nil {
		return err
	}
	return a.driver.Click(selNewSignIn)
}

func (a *Authenticator) loginOldUI() error {
	if err := a.driver.Fill(selOldUsername, a.creds.Username); err != nil {
		return err
	}
	if err := a.driver.Fill(selOldPassword, a.creds.Password); err != nil {
		return err
	}
	return a.driver.Press(selOldPassword, "Enter")
}
