package harness

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/logging"
)

// fakeDriver scripts the page surface the authenticator drives. Selectors
// listed in visible satisfy WaitVisible; everything else times out.
// failOn maps an operation key ("fill <sel>", "click <sel>", "press <sel>")
// to an error.
type fakeDriver struct {
	visible map[string]bool
	failOn  map[string]error
	calls   []string
}

func newFakeDriver(visible ...string) *fakeDriver {
	d := &fakeDriver{
		visible: make(map[string]bool),
		failOn:  make(map[string]error),
	}
	for _, sel := range visible {
		d.visible[sel] = true
	}
	return d
}

func (d *fakeDriver) WaitVisible(selector string, timeoutMs float64) error {
	d.calls = append(d.calls, "wait "+selector)
	if d.visible[selector] {
		return nil
	}
	return fmt.Errorf("wait for %q failed: timeout %vms exceeded", selector, timeoutMs)
}

func (d *fakeDriver) Fill(selector, value string) error {
	d.calls = append(d.calls, "fill "+selector)
	return d.failOn["fill "+selector]
}

func (d *fakeDriver) Click(selector string) error {
	d.calls = append(d.calls, "click "+selector)
	return d.failOn["click "+selector]
}

func (d *fakeDriver) Press(selector, key string) error {
	d.calls = append(d.calls, "press "+selector+" "+key)
	return d.failOn["press "+selector]
}

func testLoginConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Credentials = config.Credentials{Username: "smoke@test.local", Password: "hunter2"}
	// Tight budgets; the fake resolves instantly either way.
	cfg.Timeouts.LoginProbeMs = 50
	cfg.Timeouts.ConsentMs = 50
	return cfg
}

func testLog(t *testing.T) *logging.Logger {
	t.Helper()
	return logging.New("test", io.Discard)
}

func TestLogin_NewUIPath(t *testing.T) {
	driver := newFakeDriver(selNewEmail)
	auth := NewAuthenticator(driver, testLog(t), testLoginConfig())

	require.NoError(t, auth.Login())

	assert.Equal(t, []string{
		"wait " + selConsentAccept,
		"wait " + selNewEmail,
		"click " + selNewEmail,
		"fill " + selNewEmail,
		"click " + selNewNext,
		"fill " + selNewPassword,
		"click " + selNewSignIn,
	}, driver.calls)

	// Old-UI fields are never touched.
	for _, call := range driver.calls {
		assert.NotContains(t, call, selOldUsername)
		assert.NotContains(t, call, selOldPassword)
	}
}

func TestLogin_OldUIPath(t *testing.T) {
	driver := newFakeDriver() // new-UI probe times out
	auth := NewAuthenticator(driver, testLog(t), testLoginConfig())

	require.NoError(t, auth.Login())

	assert.Equal(t, []string{
		"wait " + selConsentAccept,
		"wait " + selNewEmail,
		"fill " + selOldUsername,
		"fill " + selOldPassword,
		"press " + selOldPassword + " Enter",
	}, driver.calls)

	// New-UI controls are never driven (the probe wait is the only touch).
	for _, call := range driver.calls {
		assert.NotContains(t, call, "click")
	}
}

func TestLogin_ExactlyOneVariantExecutes(t *testing.T) {
	for _, newUIPresent := range []bool{true, false} {
		name := "old"
		driver := newFakeDriver()
		if newUIPresent {
			name = "new"
			driver = newFakeDriver(selNewEmail)
		}

		t.Run(name, func(t *testing.T) {
			auth := NewAuthenticator(driver, testLog(t), testLoginConfig())
			require.NoError(t, auth.Login())

			var newOps, oldOps int
			for _, call := range driver.calls {
				switch {
				case call == "fill "+selNewPassword:
					newOps++
				case call == "fill "+selOldPassword:
					oldOps++
				}
			}
			assert.Equal(t, 1, newOps+oldOps, "exactly one variant must submit credentials")
		})
	}
}

func TestLogin_ConsentDismissedWhenPresent(t *testing.T) {
	driver := newFakeDriver(selConsentAccept, selNewEmail)
	auth := NewAuthenticator(driver, testLog(t), testLoginConfig())

	require.NoError(t, auth.Login())
	assert.Contains(t, driver.calls, "click "+selConsentAccept)
}

func TestLogin_FillFailureIsFatal(t *testing.T) {
	driver := newFakeDriver(selNewEmail)
	driver.failOn["fill "+selNewPassword] = fmt.Errorf("element detached")

	auth := NewAuthenticator(driver, testLog(t), testLoginConfig())
	err := auth.Login()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "login error:")
	assert.Contains(t, err.Error(), "element detached")
}

func TestLogin_OldUISubmitFailureIsFatal(t *testing.T) {
	driver := newFakeDriver()
	driver.failOn["press "+selOldPassword] = fmt.Errorf("keyboard unavailable")

	auth := NewAuthenticator(driver, testLog(t), testLoginConfig())
	err := auth.Login()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "login error:")
}

func TestLoginUIVariant_String(t *testing.T) {
	assert.Equal(t, "new", VariantNew.String())
	assert.Equal(t, "old", VariantOld.String())
}
