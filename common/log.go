package common

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns the stderr logger shared by the binaries.
func NewLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Discard is a logger for tests and headless callers.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard substitutes Discard for a nil logger.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
