package browser

// Default values for the smoke-test browser session.
const (
	DefaultNavigationTimeoutMs = 60000.0 // 60 seconds in milliseconds
	DefaultViewportWidth       = 1440
	DefaultViewportHeight      = 900
)

// LaunchOptions configures the single browser session used for a run.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// NavigationTimeoutMs is the default navigation timeout (in
	// milliseconds). Zero means DefaultNavigationTimeoutMs.
	NavigationTimeoutMs float64
}
