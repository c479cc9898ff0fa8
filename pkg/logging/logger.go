// Package logging provides the console logger for smoke-test runs.
//
// Harness components log through the Log interface so tests can assert on
// emitted events without capturing stdout. Every line carries a short
// per-run identifier, a level and the component that emitted it.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Log is the logging surface harness components depend on.
type Log interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Level and banner styles. Rendering degrades to plain text on terminals
// without colour support.
var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Logger writes timestamped, component-scoped lines to a single writer.
// All components of one run share the writer, the mutex and the run ID.
type Logger struct {
	mu        *sync.Mutex
	out       io.Writer
	runID     string
	component string
}

var _ Log = (*Logger)(nil)

// New creates the root logger for a run. A nil writer defaults to stderr.
func New(component string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		mu:        &sync.Mutex{},
		out:       out,
		runID:     uuid.New().String()[:8],
		component: component,
	}
}

// WithComponent returns a logger sharing this logger's writer and run ID
// under a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		mu:        l.mu,
		out:       l.out,
		runID:     l.runID,
		component: component,
	}
}

// RunID returns the short identifier stamped on every line of this run.
func (l *Logger) RunID() string {
	return l.runID
}

// Infof logs a progress line.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(infoStyle.Render("INFO"), format, args...)
}

// Warnf logs a recoverable anomaly.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(warnStyle.Render("WARN"), format, args...)
}

// Errorf logs a failure.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(errorStyle.Render("ERROR"), format, args...)
}

func (l *Logger) write(level string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[%s] [%s] [%s] [%s] %s\n", timestamp, l.runID, level, l.component, message)
}

// BannerLine renders the per-URL verdict banner for operator visibility.
func BannerLine(url string, success bool) string {
	if success {
		return passStyle.Render("PASS") + " " + url
	}
	return failStyle.Render("FAIL") + " " + url
}
