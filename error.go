package pinpoint

import (
	"errors"
	"fmt"
)

// Application error codes. These map the failure taxonomy of the analysis
// pipeline onto machine-readable values that callers can branch on without
// string matching.
const (
	EAISERVICE   = "ai_service"  // extraction backend failure (rate limit, auth, network)
	EINTERNAL    = "internal"    // internal error (bug)
	EINVALID     = "invalid"     // validation failed (user must correct input)
	ENOCONTENT   = "no_content"  // content strategy cascade exhausted
	ENOTFOUND    = "not_found"   // entity does not exist
	ETIMEOUT     = "timeout"     // deadline exceeded (user may retry)
	EUNAVAILABLE = "unavailable" // external service unreachable or over quota
	EUNSUPPORTED = "unsupported" // response format cannot be processed (e.g. non-HTML)
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the machine-readable code and a
// human-readable message.
type Error struct {
	// Code is the machine-readable error code.
	Code string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("pinpoint error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
