package dsl

import (
	"errors"
	"fmt"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/predicate"
)

// Option configures a schema builder.
type Option func(*schemaBuilder)

// WithRegistry resolves predicate names against r instead of
// predicate.Default().
func WithRegistry(r *predicate.Registry) Option {
	return func(b *schemaBuilder) {
		if r != nil {
			b.registry = r
		}
	}
}

type fieldDecl struct {
	name     string
	presence validations.Presence
	guard    validations.Guard
	specs    []Spec
}

type schemaBuilder struct {
	registry *predicate.Registry
	fields   []*fieldDecl
}

type fieldStep struct {
	b *schemaBuilder
	f *fieldDecl
}

// Schema creates a new schema builder. Fields are evaluated in the order they
// are declared.
func Schema(opts ...Option) *schemaBuilder {
	b := &schemaBuilder{registry: predicate.Default()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Field declares a field. Until Optional is called the field is required
// and has no guard.
func (b *schemaBuilder) Field(name string) *fieldStep {
	f := &fieldDecl{name: name, presence: validations.Required, guard: validations.GuardNone}
	b.fields = append(b.fields, f)
	return &fieldStep{b: b, f: f}
}

// Required marks the field as required (default).
func (s *fieldStep) Required() *fieldStep {
	s.f.presence = validations.Required
	return s
}

// Optional marks the field as optional.
func (s *fieldStep) Optional() *fieldStep {
	s.f.presence = validations.Optional
	return s
}

// Value runs preds against any present value.
func (s *fieldStep) Value(preds ...Spec) *schemaBuilder {
	return s.chain(validations.GuardNone, preds)
}

// Filled requires a non-blank value before running preds.
func (s *fieldStep) Filled(preds ...Spec) *schemaBuilder {
	return s.chain(validations.GuardFilled, preds)
}

// Maybe accepts null and runs preds against any other value.
func (s *fieldStep) Maybe(preds ...Spec) *schemaBuilder {
	return s.chain(validations.GuardMaybe, preds)
}

func (s *fieldStep) chain(g validations.Guard, preds []Spec) *schemaBuilder {
	s.f.guard = g
	s.f.specs = append(s.f.specs, preds...)
	return s.b
}

func (s *fieldStep) Field(name string) *fieldStep        { return s.b.Field(name) }
func (s *fieldStep) Build() (*validations.Schema, error) { return s.b.Build() }
func (s *fieldStep) MustBuild() *validations.Schema      { return s.b.MustBuild() }

// Build resolves every predicate and assembles the schema. All problems are
// reported together.
func (b *schemaBuilder) Build() (*validations.Schema, error) {
	var errs []error
	fields := make([]validations.Field, 0, len(b.fields))
	for _, f := range b.fields {
		calls := make([]predicate.Call, 0, len(f.specs))
		bound := true
		for _, sp := range f.specs {
			c, err := sp.bind(b.registry)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %q: %w", f.name, err))
				bound = false
				continue
			}
			calls = append(calls, c)
		}
		if !bound {
			continue
		}
		r, err := validations.NewRule(f.presence, f.guard, calls...)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", f.name, err))
			continue
		}
		fields = append(fields, validations.Field{Name: f.name, Rule: r})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return validations.NewSchema(fields...)
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *validations.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
