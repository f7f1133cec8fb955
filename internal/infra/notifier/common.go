package notifier

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

// Common error types shared by the Bark and Telegram backends.

// ClientError represents a 4xx response or a backend-reported rejection
// (e.g., Telegram's ok=false). Not worth repeating within a run.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// HTTPStatus returns the response status for retry classification.
func (e *ClientError) HTTPStatus() int { return e.StatusCode }

// ServerError represents a 5xx response from a push backend.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// HTTPStatus returns the response status for retry classification.
func (e *ServerError) HTTPStatus() int { return e.StatusCode }
