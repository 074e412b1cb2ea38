package source

import (
	"net/url"

	validations "github.com/reoring/validations"
)

// Form converts form values. A key with one value maps to that text, a
// repeated key to a list of texts and a key with no values to "".
func Form(values url.Values) validations.Input {
	in := make(validations.Input, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			in[k] = ""
		case 1:
			in[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			in[k] = list
		}
	}
	return in
}
