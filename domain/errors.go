package domain

import "fmt"

// ValidationError reports arguments rejected before any network activity.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a non-success response or a malformed payload from
// the remote server.
type TransportError struct {
	Status     int
	StatusText string
	Body       string
}

func NewTransportError(response *APIResponse) *TransportError {
	return &TransportError{
		Status:     response.Status,
		StatusText: response.StatusText,
		Body:       response.Text,
	}
}

func (e *TransportError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("request failed with status %d %s: %s", e.Status, e.StatusText, e.Body)
	}
	return fmt.Sprintf("request failed with status %d %s", e.Status, e.StatusText)
}
