package resolver

import "fmt"

// InvalidInputError reports input that can never resolve: an empty value,
// an empty field list, or a value that normalizes to nothing. It is raised
// before any store query and is never retried.
type InvalidInputError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return "invalid resolver input: " + e.Reason
}

// NoMatchError reports that the entire search space — every field, every
// window length — was exhausted without a single candidate. It carries the
// entity type and original input so an operator can investigate or create
// the missing record.
type NoMatchError struct {
	Entity string
	Input  string
}

// Error implements the error interface.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no %q record matches %q", e.Entity, e.Input)
}
