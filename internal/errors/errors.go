package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateUser is returned when the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned when a protected route is called without a token.
	ErrUnauthorized = errors.New("no token provided")
	// ErrForbidden is returned when the presented token fails verification.
	ErrForbidden = errors.New("invalid token")
	// ErrUnsupportedMedia is returned when an upload is not an allowed image.
	ErrUnsupportedMedia = errors.New("only images are allowed")
	// ErrMediaTooLarge is returned when an upload exceeds the size ceiling.
	ErrMediaTooLarge = errors.New("file is too large")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. ErrUserNotFound maps to
// notFoundStatus because login reports it as 400 while the dashboard uses 404.
func MapErrorToHTTP(err error, notFoundStatus int) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "All fields are required.", "VALIDATION_FAILED")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, "Username or email already exists.", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		msg := "User not found."
		if notFoundStatus == http.StatusBadRequest {
			msg = "User not found. Please register first."
		}
		return NewHTTPError(notFoundStatus, msg, "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, "Invalid username or password.", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "Access Denied. No Token Provided.", "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Invalid Token.", "FORBIDDEN")
	case errors.Is(err, ErrUnsupportedMedia):
		return NewHTTPError(http.StatusUnsupportedMediaType, "Only images are allowed.", "UNSUPPORTED_MEDIA_TYPE")
	case errors.Is(err, ErrMediaTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, "Profile picture is too large.", "MEDIA_TOO_LARGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal Server Error.", "INTERNAL_ERROR")
	}
}
