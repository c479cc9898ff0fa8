package harness

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/browser"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
	"github.com/jaguerra2017/fdsu-prp-framework/pkg/logging"
)

// tlsWarningPhrases are fragments of the browser-generated certificate
// warning page. The interstitial exposes no stable structure, so detection
// is a case-insensitive scan of the rendered text.
var tlsWarningPhrases = []string{
	"connection is not private",
	"connection isn't private",
	"net::err_cert",
}

const (
	// probeDelay lets a fresh navigation paint before the text probe runs.
	probeDelay = 500 * time.Millisecond

	// interstitialGrace is how long the operator gets to click through the
	// warning manually.
	interstitialGrace = 15 * time.Second

	bypassPrompt = "Certificate warning detected: click Advanced, then Proceed, to continue the smoke test."
)

// InterstitialHandler clears the browser-native TLS certificate warning
// that self-signed test deployments can trigger on any fresh navigation.
// It is invoked after reaching the sign-in page and again after every
// target navigation.
type InterstitialHandler struct {
	sess     *browser.Session
	log      logging.Log
	loginURL string
	navMs    float64
	settle   time.Duration
}

// NewInterstitialHandler wires the handler to the run's session.
func NewInterstitialHandler(sess *browser.Session, log logging.Log, cfg *config.Config) *InterstitialHandler {
	return &InterstitialHandler{
		sess:     sess,
		log:      log,
		loginURL: cfg.LoginURL,
		navMs:    cfg.Timeouts.NavigationMs,
		settle:   time.Duration(cfg.Timeouts.SettleMs) * time.Millisecond,
	}
}

// Clear probes the current page for the TLS warning. The common case is
// that no warning is present and Clear returns after the short probe.
// When the warning is found, the operator is prompted in-page, given a
// fixed grace period to bypass it manually, and the session is then
// re-navigated to the sign-in page.
//
// Probe failures are logged and swallowed: the interstitial is an edge
// case and detection must never abort the run.
func (h *InterstitialHandler) Clear() {
	time.Sleep(probeDelay)

	text, err := h.sess.VisibleText()
	if err != nil {
		h.log.Warnf("interstitial probe failed: %v", err)
		return
	}
	if !ContainsTLSWarning(text) {
		return
	}

	h.log.Warnf("TLS certificate interstitial detected on %s, pausing %s for manual bypass", h.sess.CurrentURL(), interstitialGrace)
	if err := h.sess.Evaluate(fmt.Sprintf("alert(%q)", bypassPrompt)); err != nil {
		h.log.Warnf("could not display bypass prompt: %v", err)
	}
	time.Sleep(interstitialGrace)

	if _, err := h.sess.Navigate(h.loginURL, h.navMs); err != nil {
		// Certificate issue persists; the next navigation surfaces it as a
		// per-URL failure.
		h.log.Warnf("re-navigation after interstitial failed: %v", err)
	}
	time.Sleep(h.settle)
}

// ContainsTLSWarning reports whether rendered page text looks like the
// browser certificate warning.
func ContainsTLSWarning(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range tlsWarningPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
