package recommend

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-compass/internal/parsing"
)

// UserMessage is the only failure text shown to end users.
const UserMessage = "We encountered an issue analyzing the data. Please check your connection and try again."

// Kind classifies a Submit failure.
type Kind string

// Failure kinds
const (
	KindConfiguration  Kind = "configuration"
	KindService        Kind = "service"
	KindParse          Kind = "parse"
	KindInvalidProfile Kind = "invalid_profile"
	KindUnknown        Kind = "unknown"
)

// ConfigurationError means the service credential or settings are missing.
// It is raised before any network call and is not retryable.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ServiceError represents a failed call to the reasoning service
type ServiceError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ProfileError wraps a profile that failed validation.
type ProfileError struct {
	Cause error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("incomplete profile: %v", e.Cause)
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}

// KindOf returns the failure kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var (
		configErr  *ConfigurationError
		serviceErr *ServiceError
		parseErr   *parsing.ParseError
		profileErr *ProfileError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &configErr):
		return KindConfiguration
	case errors.As(err, &serviceErr):
		return KindService
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &profileErr):
		return KindInvalidProfile
	}
	return KindUnknown
}
