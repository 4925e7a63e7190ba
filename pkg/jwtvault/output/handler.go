package output

import (
	"fmt"
	"io"
	"os"
)

// Handler manages CLI output emission. Silent mode suppresses warnings
// but never errors or success lines.
type Handler struct {
	stdout io.Writer
	stderr io.Writer
	silent bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSilent sets silent mode (suppress warning output to stderr).
func WithSilent(silent bool) HandlerOption {
	return func(h *Handler) {
		h.silent = silent
	}
}

// NewHandler creates a new output handler with the given writers and options.
func NewHandler(stdout, stderr io.Writer, opts ...HandlerOption) *Handler {
	h := &Handler{
		stdout: stdout,
		stderr: stderr,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Warnf prints a warning to stderr unless silent mode is enabled.
func (h *Handler) Warnf(format string, args ...interface{}) {
	if h.silent {
		return
	}
	_, _ = fmt.Fprintf(h.stderr, "warning: %s\n", fmt.Sprintf(format, args...))
}

// Successf prints a success message to stdout.
func (h *Handler) Successf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(h.stdout, "%s\n", fmt.Sprintf(format, args...))
}

// WriteLine writes a line of output to stdout.
func (h *Handler) WriteLine(message string) {
	_, _ = fmt.Fprintf(h.stdout, "%s\n", message)
}

// PrintError writes an error message to the given writer and returns the
// exit code for it. Non-structured errors map to the general exit code.
func PrintError(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	if outErr, ok := err.(*Error); ok {
		_, _ = fmt.Fprintf(w, "error: %s\n", outErr.Message)
		return outErr.ExitCode()
	}

	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	return ExitGeneralError
}

// ExitWithError prints an error to stderr and exits with its code.
func ExitWithError(err error) {
	os.Exit(PrintError(os.Stderr, err).Int())
}

// Preview returns a short, safe-to-print prefix of a secret value.
// Only ever use the result for display; the full value must never be
// printed or logged.
func Preview(value string) string {
	const n = 20
	if len(value) <= n {
		return value
	}
	return value[:n] + "..."
}
