package models

import "fmt"

// ValidationError reports a missing or malformed query field. Callers can fix it themselves.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigurationError reports a missing server-side setting such as the upstream api key.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server is missing required configuration: %s", e.Setting)
}

// UpstreamError wraps a failure of the job search provider. Details carries the provider's own
// message when one was returned.
type UpstreamError struct {
	Message string
	Details string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
