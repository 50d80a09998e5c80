package netbox

import (
	"errors"
	"fmt"
)

// RequestError is returned when NetBox rejects a request (HTTP 4xx).
// It covers validation failures and uniqueness conflicts, e.g. creating a
// VLAN whose vid already exists in the site, or cabling an occupied port.
// Transport failures and server-side errors are ordinary errors.
type RequestError struct {
	// StatusCode is the HTTP status of the rejected request.
	StatusCode int
	// Detail is the error body returned by NetBox.
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("netbox request rejected (status %d): %s", e.StatusCode, e.Detail)
}

// IsRequestError reports whether err is (or wraps) a NetBox request
// rejection.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
