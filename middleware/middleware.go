// Package middleware validates HTTP request payloads against a schema.
//
// Validate is net/http middleware (func(http.Handler) http.Handler) and so
// plugs into chi or any router built on net/http. Responses:
//
//	400 {"error": "..."}                 body could not be decoded
//	413 {"error": "..."}                 body exceeded the size limit
//	422 {"errors": {"field": ["..."]}}   validation failed
//	500 {"error": "internal error"}      a predicate faulted (logged)
//
// On success the decoded Input is stored in the request context.
package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	j "github.com/goccy/go-json"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/internal/logger"
	"github.com/reoring/validations/source"
)

// DefaultMaxBodyBytes bounds request bodies read by JSONBody.
const DefaultMaxBodyBytes int64 = 1 << 20

type ctxKeyInput struct{}

// ContextWithInput attaches a validated Input to the context.
func ContextWithInput(ctx context.Context, in validations.Input) context.Context {
	return context.WithValue(ctx, ctxKeyInput{}, in)
}

// InputFromContext retrieves the Input stored by Validate.
func InputFromContext(ctx context.Context) (validations.Input, bool) {
	in, ok := ctx.Value(ctxKeyInput{}).(validations.Input)
	return in, ok
}

// Decoder extracts the Input from a request.
type Decoder func(w http.ResponseWriter, r *http.Request) (validations.Input, error)

// JSONBody decodes a JSON object body of at most maxBytes bytes with
// duplicate keys rejected.
func JSONBody(maxBytes int64) Decoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(w http.ResponseWriter, r *http.Request) (validations.Input, error) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
		if err != nil {
			return nil, err
		}
		return source.JSON(body)
	}
}

// FormBody decodes URL query and form-encoded body values.
func FormBody() Decoder {
	return func(_ http.ResponseWriter, r *http.Request) (validations.Input, error) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return source.Form(r.Form), nil
	}
}

type options struct {
	log     *slog.Logger
	decoder Decoder
}

// Option configures Validate and Handler.
type Option func(*options)

// WithLogger sets the logger used to report faults.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithDecoder replaces the default JSONBody(DefaultMaxBodyBytes) decoder.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logger.Discard(), decoder: JSONBody(DefaultMaxBodyBytes)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate decodes and validates each request before calling next.
func Validate(s *validations.Schema, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			in, res, ok := o.run(w, r, s)
			if !ok {
				return
			}
			if !res.Success {
				writeJSON(w, http.StatusUnprocessableEntity, ErrorPayload(res))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithInput(r.Context(), in)))
		})
	}
}

// Handler validates the request and answers with the Result itself: 200 on
// success, 422 otherwise.
func Handler(s *validations.Schema, opts ...Option) http.Handler {
	o := newOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, res, ok := o.run(w, r, s)
		if !ok {
			return
		}
		status := http.StatusOK
		if !res.Success {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, res)
	})
}

// run decodes and validates; when ok is false a response was already written.
func (o *options) run(w http.ResponseWriter, r *http.Request, s *validations.Schema) (validations.Input, validations.Result, bool) {
	in, err := o.decoder(w, r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "request body too large"})
			return nil, validations.Result{}, false
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return nil, validations.Result{}, false
	}
	res, err := validations.Validate(s, in)
	if err != nil {
		o.log.ErrorContext(r.Context(), "validation fault",
			logger.Fault(err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return nil, validations.Result{}, false
	}
	return in, res, true
}

// ErrorPayload shapes an unsuccessful Result for JSON responses.
func ErrorPayload(res validations.Result) map[string]any {
	return map[string]any{"errors": res.Errors}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := j.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
