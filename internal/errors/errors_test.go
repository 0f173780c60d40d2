package errors

import (
	"fmt"
	"testing"
)

func TestCrumbError_Error(t *testing.T) {
	err := &CrumbError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "recipe not found",
	}

	expected := "NOT_FOUND: recipe not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("source_url is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "source_url is required" {
		t.Errorf("Message = %q, want %q", err.Message, "source_url is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01ABC")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01ABC" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "01ABC")
	}
}

func TestNewImageNotFound(t *testing.T) {
	err := NewImageNotFound("01ABC")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
}

func TestNewImageTooLarge(t *testing.T) {
	err := NewImageTooLarge(1024, 4096)

	if err.Code != ErrImageTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrImageTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_bytes"] != 1024 {
		t.Errorf("Details[max_bytes] = %v, want 1024", err.Details["max_bytes"])
	}
	if err.Details["actual_bytes"] != 4096 {
		t.Errorf("Details[actual_bytes] = %v, want 4096", err.Details["actual_bytes"])
	}
}

func TestNewBodyTooLarge(t *testing.T) {
	err := NewBodyTooLarge(100, 150)

	if err.Code != ErrBodyTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrBodyTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["actual_chars"] != 150 {
		t.Errorf("Details[actual_chars] = %v, want 150", err.Details["actual_chars"])
	}
}

func TestNewUnsupportedMedia(t *testing.T) {
	err := NewUnsupportedMedia("text/plain")

	if err.Code != ErrUnsupportedMedia {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnsupportedMedia)
	}
	if err.Status != 415 {
		t.Errorf("Status = %d, want 415", err.Status)
	}
}

func TestNewFetchFailed(t *testing.T) {
	err := NewFetchFailed("https://example.com", fmt.Errorf("HTTP 503"))

	if err.Code != ErrFetchFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrFetchFailed)
	}
	if err.Status != 502 {
		t.Errorf("Status = %d, want 502", err.Status)
	}
	if err.Message != "failed to fetch https://example.com: HTTP 503" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak internal details)
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrInvalidRequest) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-CrumbError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-CrumbError")
		}
	})

	t.Run("wrapped CrumbError", func(t *testing.T) {
		inner := NewNotFound("test")
		wrapped := fmt.Errorf("capture: %w", inner)
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped CrumbError")
		}
	})
}
