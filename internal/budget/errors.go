package budget

import "fmt"

// ValidationError reports bad or incomplete caller input. It maps to
// an HTTP 400 at the API boundary.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConnectionError reports that no response was received from the
// portal (DNS, dial, TLS or other transport failure).
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("no se pudo conectar con %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response from the portal.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("el portal respondió con estado %d para %s", e.Code, e.URL)
}

// ParseError reports that the report page had no usable data table.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}
