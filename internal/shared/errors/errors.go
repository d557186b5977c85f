package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an error. Each maps to one HTTP status.
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrorTypeExternal covers the catalog database and the texture cache.
	ErrorTypeExternal    ErrorType = "external"
	ErrorTypeRateLimited ErrorType = "rate_limited"
)

// AppError is the base error type for application errors. Param names the
// request parameter at fault, when there is one.
type AppError struct {
	Type    ErrorType
	Message string
	Param   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, err error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &AppError{Type: t, Message: msg, Err: err}
}

func NotFoundf(format string, args ...any) error {
	return newError(ErrorTypeNotFound, nil, format, args...)
}

func Validation(message string) error {
	return newError(ErrorTypeValidation, nil, "%s", message)
}

func Validationf(format string, args ...any) error {
	return newError(ErrorTypeValidation, nil, format, args...)
}

func WrapValidation(message string, err error) error {
	return newError(ErrorTypeValidation, err, "%s", message)
}

// InvalidParam reports a request parameter (seed, size, surface, ...) that
// failed to parse or validate. The cause stays reachable with errors.Is, so
// callers can still match texture.ErrInvalidDimension and friends.
func InvalidParam(param string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: "invalid " + param,
		Param:   param,
		Err:     err,
	}
}

// OverLimit reports a request parameter that parsed but exceeds a configured
// bound, such as a texture size above GENERATOR_MAX_SIZE.
func OverLimit(param string, got, limit int) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("%s %d exceeds maximum %d", param, got, limit),
		Param:   param,
	}
}

func WrapInternal(message string, err error) error {
	return newError(ErrorTypeInternal, err, "%s", message)
}

func Unauthorized(message string) error {
	return newError(ErrorTypeUnauthorized, nil, "%s", message)
}

func Forbidden(message string) error {
	return newError(ErrorTypeForbidden, nil, "%s", message)
}

func MethodNotAllowed(method string) error {
	return newError(ErrorTypeMethodNotAllowed, nil, "method %s not allowed", method)
}

func External(message string) error {
	return newError(ErrorTypeExternal, nil, "%s", message)
}

func WrapExternal(message string, err error) error {
	return newError(ErrorTypeExternal, err, "%s", message)
}

// Unavailable reports an optional backing service that this process was
// started without, e.g. the catalog when DB_ENABLED is false.
func Unavailable(dependency string) error {
	return newError(ErrorTypeExternal, nil, "%s is not configured", dependency)
}

func RateLimited(message string) error {
	return newError(ErrorTypeRateLimited, nil, "%s", message)
}

// GetType returns the type of the outermost AppError in err's chain, or
// ErrorTypeInternal for anything else.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// GetParam returns the offending request parameter recorded in err's chain.
func GetParam(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Param
	}
	return ""
}
