package core

import "fmt"

// ValidationError marks malformed or disallowed input. It is fatal and
// maps to a 4xx response with no partial report.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UnsupportedContentError is returned when the target does not serve an
// HTML document. Fatal for the whole analysis.
type UnsupportedContentError struct {
	ContentType string
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("unsupported content type %q, only text/html is analyzed", e.ContentType)
}

// FetchError wraps a transport-level failure while retrieving the page.
// The analyzer degrades on it instead of aborting.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
