package errors

import (
	"errors"
	"log/slog"
)

// AttrsToArgs converts slog.Attr slice to []any for use with structured logging.
func AttrsToArgs(attrs []slog.Attr) []any {
	if len(attrs) == 0 {
		return nil
	}
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// LogArgs returns the structured context of err, plus its message and category,
// ready to pass to a slog call.
func LogArgs(err error) []any {
	if err == nil {
		return nil
	}
	attrs := []slog.Attr{slog.String("error", err.Error())}
	var e *Error
	if errors.As(err, &e) {
		attrs = append(attrs, slog.String("category", e.Category.String()))
		attrs = append(attrs, e.Context.Attrs()...)
	}
	return AttrsToArgs(attrs)
}
