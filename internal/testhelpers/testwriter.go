package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer implements io.Writer and writes to tb.Log so that logs only show up for failed tests.
type Writer struct {
	tb       testing.TB
	testDone chan struct{}
}

// NewWriter creates a new Writer that writes to tb.Log.
func NewWriter(tb testing.TB) io.Writer {
	w := &Writer{
		tb:       tb,
		testDone: make(chan struct{}),
	}
	tb.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

// Write implements io.Writer by writing to tb.Log.
func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: write after test completion. Did you forget to close the database in t.Cleanup?")
	default:
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.tb.Log(output)
		}
		return len(p), nil
	}
}
