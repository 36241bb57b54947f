// errors.go defines the typed errors surfaced by tool handlers. Every
// domain failure is converted into an error-tagged tool result; these
// types carry the detail those results need.
package main

import "fmt"

// APIError is a non-2xx response from the Freepik API. The body is kept
// verbatim so callers see the vendor's own error message.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freepik api: status %d: %s", e.StatusCode, e.Body)
}

// ConfigError reports missing or unusable configuration, most commonly
// an absent API key. Raised before any vendor call is attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

// GenerationFailedError is a task the vendor reports as FAILED.
// Terminal; never retried.
type GenerationFailedError struct {
	TaskID string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed for task %s", e.TaskID)
}

// TimeoutError is a poll budget exhausted without the task reaching a
// terminal state. The task id is included so the caller can check again
// later with check_status.
type TimeoutError struct {
	TaskID   string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s not finished after %d status checks", e.TaskID, e.Attempts)
}
