package errors

import (
	"errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType string

// Input Validation Errors - raised before any network call is made
const (
	MalformattedAPIKeyError ErrorType = "MALFORMATTED_API_KEY_ERROR"
	InvalidCountryCodeError ErrorType = "INVALID_COUNTRY_CODE_ERROR"
	RangeError              ErrorType = "RANGE_ERROR"
	ValidationError         ErrorType = "VALIDATION_ERROR"
)

// Upstream API Errors - derived from an AccuWeather response
const (
	NoResultsError    ErrorType = "NO_RESULTS_ERROR"
	UnauthorisedError ErrorType = "UNAUTHORISED_ERROR"
	APIError          ErrorType = "API_ERROR"
)

// Infrastructure Errors - transport failures and internal consistency
const (
	TransportError        ErrorType = "TRANSPORT_ERROR"
	TemplateNotFoundError ErrorType = "TEMPLATE_NOT_FOUND_ERROR"
	ConfigurationError    ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Input Validation Error Constructors
func NewMalformattedAPIKeyError() *AppError {
	return New(MalformattedAPIKeyError, "API key must be a 32-character string")
}

func NewInvalidCountryCodeError(countryCode string) *AppError {
	return New(InvalidCountryCodeError, fmt.Sprintf("country code %q must be exactly 2 characters", countryCode))
}

func NewRangeError(lat, lon float64) *AppError {
	return New(RangeError, fmt.Sprintf("coordinates (%.4f, %.4f) outside valid bounds", lat, lon))
}

func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

// Upstream API Error Constructors
func NewNoResultsError(searchExpression string) *AppError {
	return New(NoResultsError, fmt.Sprintf("no results found for %q", searchExpression))
}

func NewUnauthorisedError() *AppError {
	return New(UnauthorisedError, "request rejected by the API (HTTP 403), check the API key")
}

func NewAPIError(message string) *AppError {
	return New(APIError, message)
}

// Infrastructure Error Constructors
func NewTransportError(message string, cause error) *AppError {
	return Wrap(TransportError, message, cause)
}

func NewTemplateNotFoundError(operation string) *AppError {
	return New(TemplateNotFoundError, fmt.Sprintf("no URL template registered for operation %q", operation))
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}
