package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a crumb error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrImageTooLarge    ErrorCode = "IMAGE_TOO_LARGE"   // 413
	ErrBodyTooLarge     ErrorCode = "BODY_TOO_LARGE"    // 413
	ErrUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA" // 415
	ErrFetchFailed      ErrorCode = "FETCH_FAILED"      // 502
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// CrumbError represents a structured error with code, status, and details.
type CrumbError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CrumbError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CrumbError {
	return &CrumbError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a recipe cannot be found.
func NewNotFound(id string) *CrumbError {
	return &CrumbError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("recipe not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewImageNotFound creates a 404 error for a recipe without a captured image.
func NewImageNotFound(id string) *CrumbError {
	return &CrumbError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("recipe has no image: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewImageTooLarge creates a 413 error when an image exceeds the size limit.
func NewImageTooLarge(max, actual int) *CrumbError {
	return &CrumbError{
		Code:    ErrImageTooLarge,
		Status:  413,
		Message: fmt.Sprintf("image exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewBodyTooLarge creates a 413 error when body text exceeds the size limit.
func NewBodyTooLarge(max, actual int) *CrumbError {
	return &CrumbError{
		Code:    ErrBodyTooLarge,
		Status:  413,
		Message: fmt.Sprintf("body text exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewUnsupportedMedia creates a 415 error for uploads that are not images.
func NewUnsupportedMedia(mimeType string) *CrumbError {
	return &CrumbError{
		Code:    ErrUnsupportedMedia,
		Status:  415,
		Message: fmt.Sprintf("unsupported media type: %s", mimeType),
		Details: map[string]any{"mime_type": mimeType},
	}
}

// NewFetchFailed creates a 502 error when a page could not be loaded.
// It is a "try again" state, never fatal.
func NewFetchFailed(url string, err error) *CrumbError {
	msg := fmt.Sprintf("failed to fetch %s", url)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &CrumbError{
		Code:    ErrFetchFailed,
		Status:  502,
		Message: msg,
		Details: map[string]any{"url": url},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *CrumbError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &CrumbError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is a CrumbError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *CrumbError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
