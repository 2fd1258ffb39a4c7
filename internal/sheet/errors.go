package sheet

import (
	"errors"
	"fmt"
	"net/http"
)

// Class buckets backend failures so callers can pick a user-facing message
// and decide whether polling can continue.
type Class string

const (
	ClassNotFound         Class = "not_found"
	ClassPermissionDenied Class = "permission_denied"
	ClassRateLimited      Class = "rate_limited"
	ClassAuthConfig       Class = "auth_config"
	ClassAuthCancelled    Class = "auth_cancelled"
	ClassValidation       Class = "validation"
	ClassUnknown          Class = "unknown"
)

// Error is a classified backend failure.
type Error struct {
	Class   Class
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Class, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(class Class, message string, err error) *Error {
	return &Error{Class: class, Message: message, Err: err}
}

// ValidationError builds a validation-class failure with a user-facing
// message, for callers that reject a mutation before any write happens.
func ValidationError(message string) *Error {
	return newError(ClassValidation, message, nil)
}

// ClassOf extracts the failure class from any error, defaulting to unknown.
func ClassOf(err error) Class {
	var se *Error
	if errors.As(err, &se) {
		return se.Class
	}
	return ClassUnknown
}

// Fatal reports whether the failure should stop the polling loop. Missing
// sources and revoked access do not heal on their own; quota and transient
// errors do.
func Fatal(err error) bool {
	switch ClassOf(err) {
	case ClassNotFound, ClassPermissionDenied:
		return true
	}
	return false
}

// UserMessage renders one readable sentence per failure class.
func UserMessage(err error) string {
	switch ClassOf(err) {
	case ClassNotFound:
		return "Sheet not found. Check the URL or ID and try again."
	case ClassPermissionDenied:
		return "You don't have access to this sheet. Check its sharing settings."
	case ClassRateLimited:
		return "The sheet service is rate limiting requests. Please wait a moment."
	case ClassAuthConfig:
		return "Sign-in is misconfigured. Check the API credentials."
	case ClassAuthCancelled:
		return "Sign-in was cancelled."
	case ClassValidation:
		var se *Error
		if errors.As(err, &se) && se.Message != "" {
			return se.Message
		}
		return "The request was invalid."
	default:
		return "Something went wrong talking to the sheet service."
	}
}

func classifyStatus(status int) Class {
	switch status {
	case http.StatusNotFound:
		return ClassNotFound
	case http.StatusForbidden:
		return ClassPermissionDenied
	case http.StatusTooManyRequests:
		return ClassRateLimited
	case http.StatusUnauthorized:
		return ClassAuthConfig
	default:
		return ClassUnknown
	}
}
