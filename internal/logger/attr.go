package logger

import (
	"log/slog"

	"github.com/reoring/validations/predicate"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Fault groups the structured parts of a predicate fault under "fault".
// Errors that are not faults are logged as Error.
func Fault(err error) slog.Attr {
	f, ok := predicate.AsFault(err)
	if !ok {
		return Error(err)
	}
	attrs := []slog.Attr{
		slog.String("kind", f.Kind.String()),
		slog.String("op", f.Op),
	}
	if f.Field != "" {
		attrs = append(attrs, slog.String("field", f.Field))
	}
	if f.Predicate != "" {
		attrs = append(attrs, slog.String("predicate", f.Predicate))
	}
	attrs = append(attrs, slog.String("left", f.Left))
	if f.Right != "" {
		attrs = append(attrs, slog.String("right", f.Right))
	}
	return slog.Attr{Key: "fault", Value: slog.GroupValue(attrs...)}
}

// Schema records a schema identifier (usually its file) under "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}
