// Package source turns request payloads into validations.Input.
//
// Values are decoded without coercion so that predicates see what the
// client sent: JSON numbers arrive as json.Number, form fields as text.
//
//   - JSON/JSONReader: go-json token decoding; the root must be an object and
//     duplicate keys are rejected unless AllowDuplicateKeys is given.
//   - YAML: yaml.v3 mapping documents (used by the CLI for fixtures).
//   - Form: url.Values, one value as text and repeated values as a list.
package source
