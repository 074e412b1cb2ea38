package validations

// Result is the outcome of one evaluation. Success is true iff Errors is
// empty; fields without messages are omitted from Errors.
type Result struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors"`

	order []string
}

// Messages returns the messages recorded for field, or nil.
func (r Result) Messages(field string) []string { return r.Errors[field] }

// Fields lists failing fields in declared order.
func (r Result) Fields() []string { return append([]string(nil), r.order...) }

// Err returns ValidationErrors for an unsuccessful result and nil otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	ve := make(ValidationErrors, 0, len(r.order))
	for _, f := range r.order {
		ve = append(ve, FieldError{Field: f, Messages: r.Errors[f]})
	}
	return ve
}

type aggregator struct {
	errors map[string][]string
	order  []string
}

func newAggregator(n int) *aggregator {
	return &aggregator{errors: make(map[string][]string, n)}
}

func (a *aggregator) add(field string, outcome []string) {
	if len(outcome) == 0 {
		return
	}
	a.errors[field] = outcome
	a.order = append(a.order, field)
}

func (a *aggregator) result() Result {
	return Result{Success: len(a.errors) == 0, Errors: a.errors, order: a.order}
}
