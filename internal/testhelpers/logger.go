package testhelpers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/liftlog/internal/logging"
)

// NewLogger creates a debug level logger writing to logSink such as testhelpers.NewWriter.
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.NewLogger(logSink, slog.LevelDebug)
}

// NewTestLogger returns a logger whose output is only shown when tb fails.
func NewTestLogger(tb testing.TB) *slog.Logger {
	return NewLogger(NewWriter(tb))
}
