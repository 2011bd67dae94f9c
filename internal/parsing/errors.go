package parsing

import "fmt"

// ParseError represents a reply that could not be read as an entry array,
// directly or from a fenced block.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError explains why one entry of an otherwise readable reply was dropped.
type ValidationError struct {
	Index   int
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("entry %d: validation error in %s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("entry %d: validation error: %s", e.Index, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
