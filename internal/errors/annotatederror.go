// Package errors annotates errors with a message, structured [slog.Attr] and the source location where the
// error entered the application, so that the log line points at the origin instead of the final handler.
//
// It re-exports the standard library helpers so callers only need to import one errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Is reports whether any error in err's tree matches target. See [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target. See [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err. See [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join returns an error that wraps the given errors. See [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// NewSentinel creates an error meant to be compared with [Is]. It carries no source location.
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // this is the sentinel constructor.
}

// New creates an error that records the caller's source location.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:         msg,
		cause:       nil,
		annotations: attrs,
		source:      callerSource(2), //nolint:mnd // skip New and callerSource.
	}
}

// Wrap annotates err with msg and attrs. The error message becomes "msg: err".
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:         msg,
		cause:       err,
		annotations: attrs,
		source:      callerSource(2), //nolint:mnd // skip Wrap and callerSource.
	}
}

// DecoratePanic converts a recovered panic value into an error pointing at the panicking line.
//
// Call it from the deferred function that recovers. It returns nil if excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:         fmt.Sprintf("panic: %v", excp),
		cause:       nil,
		annotations: nil,
		source:      panicSource(),
	}
}

type annotatedError struct {
	msg         string
	cause       error
	annotations []slog.Attr
	source      string
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// SlogError returns an "error" group attribute with the message, the collected annotations of every
// annotated error in the chain and the source location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}

	var (
		annotations []any
		source      string
	)
	for current := err; current != nil; current = errors.Unwrap(current) {
		var annotated *annotatedError
		if !errors.As(current, &annotated) {
			break
		}
		for _, a := range annotated.annotations {
			annotations = append(annotations, a)
		}
		source = annotated.source
		current = annotated
	}

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// panicSource walks the stack past runtime.gopanic to find the frame that panicked.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		}
		if !more {
			return ""
		}
	}
}
