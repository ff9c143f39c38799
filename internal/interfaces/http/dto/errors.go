package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeMissingClient is used when submission is attempted without a client
	ErrCodeMissingClient = "ERR_MISSING_CLIENT"
	// ErrCodeEmptySelection is used when submission is attempted without line items
	ErrCodeEmptySelection = "ERR_EMPTY_SELECTION"
	// ErrCodeDraftSubmitted is used when mutating an already submitted draft
	ErrCodeDraftSubmitted = "ERR_DRAFT_SUBMITTED"
	// ErrCodeNotSelected is used when targeting a catalog item that is not selected
	ErrCodeNotSelected = "ERR_NOT_SELECTED"
	// ErrCodeNumberOverridden is used when overriding an already overridden number
	ErrCodeNumberOverridden = "ERR_NUMBER_OVERRIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation and input errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeMissingClient:    http.StatusUnprocessableEntity,
	ErrCodeEmptySelection:   http.StatusUnprocessableEntity,
	ErrCodeDraftSubmitted:   http.StatusUnprocessableEntity,
	ErrCodeNotSelected:      http.StatusUnprocessableEntity,
	ErrCodeNumberOverridden: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes
// used on the wire.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_CLIENT":       ErrCodeInvalidInput,
	"INVALID_NUMBER":       ErrCodeInvalidInput,
	"INVALID_CATALOG_ITEM": ErrCodeInvalidInput,
	"INVALID_PRICE":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"MISSING_CLIENT":       ErrCodeMissingClient,
	"EMPTY_SELECTION":      ErrCodeEmptySelection,
	"DRAFT_SUBMITTED":      ErrCodeDraftSubmitted,
	"NOT_SELECTED":         ErrCodeNotSelected,
	"NUMBER_OVERRIDDEN":    ErrCodeNumberOverridden,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
