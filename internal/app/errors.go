package app

import (
	"fmt"
	"net/http"

	"leadlens/api/internal/sheet"
)

type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func errNotFound(message string) *DomainError {
	return domainError(http.StatusNotFound, "NOT_FOUND", message, nil)
}

func errValidation(message string) *DomainError {
	return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", message, nil)
}

func errConflict(code, message string) *DomainError {
	return domainError(http.StatusConflict, code, message, nil)
}

// sheetDomainError translates a classified sheet error into the API error
// shape, keeping the one-sentence user message.
func sheetDomainError(err error) *DomainError {
	message := sheet.UserMessage(err)
	switch sheet.ClassOf(err) {
	case sheet.ClassNotFound:
		return domainError(http.StatusNotFound, "SHEET_NOT_FOUND", message, nil)
	case sheet.ClassPermissionDenied:
		return domainError(http.StatusForbidden, "SHEET_PERMISSION_DENIED", message, nil)
	case sheet.ClassRateLimited:
		return domainError(http.StatusTooManyRequests, "SHEET_RATE_LIMITED", message, nil)
	case sheet.ClassAuthConfig, sheet.ClassAuthCancelled:
		return domainError(http.StatusUnauthorized, "SHEET_AUTH_FAILED", message, nil)
	case sheet.ClassValidation:
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", message, nil)
	default:
		return domainError(http.StatusBadGateway, "SHEET_UNAVAILABLE", message, nil)
	}
}
