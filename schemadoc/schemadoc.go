// Package schemadoc loads validation schemas from YAML documents.
//
//	fields:
//	  - name: age
//	    presence: required      # required (default) | optional
//	    guard: filled           # none (default) | filled | maybe
//	    predicates:
//	      - int?
//	      - gt?: 18
//	      - size?: [1, 3]
//
// A bare string names a predicate without arguments. A single-key mapping
// binds its value as the one argument; a list value is one list argument.
// Inside a flow list quote "?"-suffixed names or drop the suffix:
// ["int?", "even?"] and [int, even] both parse, [int?, even?] does not.
package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/dsl"
	"github.com/reoring/validations/predicate"
	"github.com/reoring/validations/source"
)

// ErrInvalidDocument wraps every structural problem in a document.
var ErrInvalidDocument = errors.New("schemadoc: invalid document")

// Document is the decoded form of a schema file.
type Document struct {
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc declares one field.
type FieldDoc struct {
	Name       string         `yaml:"name"`
	Presence   string         `yaml:"presence,omitempty"`
	Guard      string         `yaml:"guard,omitempty"`
	Predicates []PredicateDoc `yaml:"predicates,omitempty"`
}

// PredicateDoc is one predicate reference with its bound arguments.
type PredicateDoc struct {
	Name string
	Args []any
}

// UnmarshalYAML accepts "name" or {name: arg}.
func (p *PredicateDoc) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag != "!!str" || n.Value == "" {
			return fmt.Errorf("line %d: predicate must be a name, got %q", n.Line, n.Value)
		}
		p.Name, p.Args = n.Value, nil
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("line %d: predicate mapping must have exactly one key", n.Line)
		}
		var arg any
		if err := n.Content[1].Decode(&arg); err != nil {
			return fmt.Errorf("line %d: %w", n.Content[1].Line, err)
		}
		p.Name, p.Args = n.Content[0].Value, []any{source.Normalize(arg)}
		return nil
	default:
		return fmt.Errorf("line %d: predicate must be a name or a single-key mapping", n.Line)
	}
}

// MarshalYAML writes the same shapes UnmarshalYAML reads.
func (p PredicateDoc) MarshalYAML() (any, error) {
	switch len(p.Args) {
	case 0:
		return p.Name, nil
	case 1:
		return map[string]any{p.Name: p.Args[0]}, nil
	default:
		return nil, fmt.Errorf("predicate %s: documents bind at most one argument", p.Name)
	}
}

type config struct {
	registry *predicate.Registry
}

// Option configures loading.
type Option func(*config)

// WithRegistry resolves predicate names against r.
func WithRegistry(r *predicate.Registry) Option {
	return func(c *config) { c.registry = r }
}

// Parse builds a schema from a YAML document.
func Parse(b []byte, opts ...Option) (*validations.Schema, error) {
	return Load(bytes.NewReader(b), opts...)
}

// LoadFile reads and parses the document at path.
func LoadFile(path string, opts ...Option) (*validations.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Load decodes a document from r and builds the schema. Unknown document
// keys are rejected.
func Load(r io.Reader, opts ...Option) (*validations.Schema, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.Schema(opts...)
}

// Decode reads a Document without resolving predicates.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDocument)
	}
	return &doc, nil
}

// Schema resolves the document into a schema. Every problem is reported.
func (d *Document) Schema(opts ...Option) (*validations.Schema, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	var bopts []dsl.Option
	if cfg.registry != nil {
		bopts = append(bopts, dsl.WithRegistry(cfg.registry))
	}
	b := dsl.Schema(bopts...)

	var errs []error
	for i, f := range d.Fields {
		presence, err := validations.ParsePresence(f.Presence)
		if err != nil {
			errs = append(errs, fmt.Errorf("fields[%d] %q: %w", i, f.Name, err))
			continue
		}
		guard, err := validations.ParseGuard(f.Guard)
		if err != nil {
			errs = append(errs, fmt.Errorf("fields[%d] %q: %w", i, f.Name, err))
			continue
		}
		step := b.Field(f.Name)
		if presence == validations.Optional {
			step.Optional()
		}
		specs := make([]dsl.Spec, len(f.Predicates))
		for j, p := range f.Predicates {
			specs[j] = dsl.P(p.Name, p.Args...)
		}
		switch guard {
		case validations.GuardFilled:
			step.Filled(specs...)
		case validations.GuardMaybe:
			step.Maybe(specs...)
		default:
			step.Value(specs...)
		}
	}
	s, err := b.Build()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidDocument}, errs...)...)
	}
	return s, nil
}

// FromSchema renders s back into a document.
func FromSchema(s *validations.Schema) (*Document, error) {
	if s == nil {
		return nil, validations.ErrNilSchema
	}
	doc := &Document{}
	for _, f := range s.Fields() {
		fd := FieldDoc{Name: f.Name, Presence: f.Rule.Presence().String()}
		if g := f.Rule.Guard(); g != validations.GuardNone {
			fd.Guard = g.String()
		}
		for _, c := range f.Rule.Predicates() {
			fd.Predicates = append(fd.Predicates, PredicateDoc{Name: c.Name() + "?", Args: c.Args()})
		}
		doc.Fields = append(doc.Fields, fd)
	}
	return doc, nil
}

// Marshal encodes s as a YAML document.
func Marshal(s *validations.Schema) ([]byte, error) {
	doc, err := FromSchema(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	return buf.Bytes(), nil
}
