package shell

import "fmt"

// ParseError is a positional parse failure. Offset and Length describe the
// byte span of the offending text so an editor can underline it.
type ParseError struct {
	Message string
	Offset  int
	Length  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Span returns the error's byte range as (start, end).
func (e *ParseError) Span() (int, int) {
	return e.Offset, e.Offset + e.Length
}

// Common error messages.
const (
	errMissingPrefix     = "query must start with 'db.' or be a JSON object"
	errMissingParen      = "expected '(' after method name"
	errMissingDot        = "expected '.' between collection and method"
	errEmptyCollection   = "collection name is empty"
	errTooFewArguments   = "%s requires a filter and a %s document"
	errUnsupportedMethod = "unsupported method %q (supported: %s)"
)
