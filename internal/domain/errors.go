package domain

import "fmt"

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodePRExists        ErrorCode = "PR_EXISTS"
	ErrorCodePRClosed        ErrorCode = "PR_CLOSED"
	ErrorCodeNotAssigned     ErrorCode = "NOT_ASSIGNED"
	ErrorCodeAlreadyAssigned ErrorCode = "ALREADY_ASSIGNED"
	ErrorCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrorCodeSchema          ErrorCode = "SCHEMA_ERROR"
	ErrorCodeDataFormat      ErrorCode = "DATA_FORMAT_ERROR"
	ErrorCodeCacheTimeout    ErrorCode = "CACHE_TIMEOUT"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
