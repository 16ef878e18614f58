package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDonationNotFound is returned when a food donation is not found.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrPickupNotFound is returned when no pickup exists for a donation.
	ErrPickupNotFound = errors.New("pickup not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidTransition is returned when a status change is not allowed
	// from the donation's current status. The record is left unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyClaimed is returned when claiming a donation that is no
	// longer available.
	ErrAlreadyClaimed = errors.New("donation already claimed")
	// ErrDonationExpired is returned when claiming or creating a donation
	// past its expiry time.
	ErrDonationExpired = errors.New("donation expired")
	// ErrPickupExists is returned when a donation already has an active pickup.
	ErrPickupExists = errors.New("donation already has an active pickup")
	// ErrDuplicateUser is returned on signup when email or username is taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotPermitted is returned when the acting user may not perform the
	// requested transition.
	ErrNotPermitted = errors.New("actor not permitted")
	// ErrNoTrackingSession is returned when a donation has no live tracking
	// session.
	ErrNoTrackingSession = errors.New("no tracking session for donation")
	// ErrFeatureUnavailable is returned when the upstream failed and no
	// local fallback exists for the requested operation.
	ErrFeatureUnavailable = errors.New("feature unavailable offline")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDonationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DONATION_NOT_FOUND")
	case errors.Is(err, ErrPickupNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PICKUP_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrAlreadyClaimed):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_CLAIMED")
	case errors.Is(err, ErrDonationExpired):
		return NewHTTPError(http.StatusConflict, err.Error(), "DONATION_EXPIRED")
	case errors.Is(err, ErrPickupExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "PICKUP_EXISTS")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotPermitted):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PERMITTED")
	case errors.Is(err, ErrNoTrackingSession):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_TRACKING_SESSION")
	case errors.Is(err, ErrFeatureUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "FEATURE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
