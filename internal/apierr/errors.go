// Package apierr defines the typed errors surfaced to API clients.
// Each error carries a stable HTTP status and a human-readable message;
// they are constructed at the point of detection in the service layer and
// returned to the caller unmodified.
package apierr

import "net/http"

// APIError is a domain error with a stable (status, message) pair.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

func newError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func NewErrUsernameTaken() *APIError {
	return newError(http.StatusConflict, "username already exists")
}

func NewErrEmailTaken() *APIError {
	return newError(http.StatusConflict, "email already exists")
}

func NewErrUserNotFound() *APIError {
	return newError(http.StatusNotFound, "user not found")
}

func NewErrInvalidPassword() *APIError {
	return newError(http.StatusUnauthorized, "invalid password")
}

func NewErrAccountDisabled() *APIError {
	return newError(http.StatusForbidden, "account is disabled")
}

func NewErrAccountNotVerified() *APIError {
	return newError(http.StatusForbidden, "account not verified, please check your email for verification code")
}

func NewErrAlreadyVerified() *APIError {
	return newError(http.StatusConflict, "account is already verified")
}

func NewErrInvalidOTP() *APIError {
	return newError(http.StatusBadRequest, "invalid or expired OTP")
}

func NewErrPasswordMismatch() *APIError {
	return newError(http.StatusBadRequest, "new passwords do not match")
}

func NewErrMissingToken() *APIError {
	return newError(http.StatusUnauthorized, "missing authorization token")
}

func NewErrInvalidToken() *APIError {
	return newError(http.StatusUnauthorized, "invalid authorization token")
}

func NewErrTaskNotFound() *APIError {
	return newError(http.StatusNotFound, "task not found")
}

func NewErrCategoryNotFound() *APIError {
	return newError(http.StatusNotFound, "category not found")
}

func NewErrCategoryNameTaken() *APIError {
	return newError(http.StatusConflict, "category name already exists")
}

func NewErrNotOwner(resource string) *APIError {
	return newError(http.StatusForbidden, resource+" does not belong to user")
}

func NewErrValidation(message string) *APIError {
	return newError(http.StatusBadRequest, message)
}
