package client

import "fmt"

// AuthError reports a missing credential. It is raised before any network
// activity happens.
type AuthError struct{}

func (e *AuthError) Error() string {
	return "SITELENS_API_KEY is not configured. Set it in the environment or a .env file"
}

// TransportError reports a request that never completed (DNS failure,
// timeout, connection reset).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API request could not be completed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response. The raw body is surfaced verbatim so
// the caller can see what the backend said.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API request failed (%d): %s", e.Status, e.Body)
}

// DecodeError reports a response body that is not valid JSON. Snippet holds
// at most snippetLimit characters of the raw body for diagnostics.
type DecodeError struct {
	Snippet string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON in API response: %s", e.Snippet)
}

const snippetLimit = 200

func snippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	return string(body[:snippetLimit]) + "..."
}
