package transaction

import "fmt"

// ParseError reports a value that could not be parsed (dates, amounts).
type ParseError struct {
	Value string
	Row   int // 1-based source row, 0 when unknown
	Err   error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: cannot parse %q: %v", e.Row, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a missing file, sheet or column.
type NotFoundError struct {
	What string
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found: %s: %v", e.What, e.Name, e.Err)
	}
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// InvalidInputError reports an argument of the wrong type or shape.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError reports a failed call to an external service.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
