package transport

import "errors"

// APIError is a business rejection: the HTTP exchange succeeded but the
// server answered success=false (or the expected payload member was absent).
// The message is server-authored and intended for the user.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// RequestError is a transport failure: a non-2xx status or a failed network
// exchange. Message carries the server's message when one could be read from
// the response body, otherwise the underlying error text.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the user-facing message from err, falling back to
// the provided default. Call sites own their fallback string; the transport
// never invents one.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if msg := reqErr.Error(); msg != "" && msg != "request failed" {
			return msg
		}
		return fallback
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
