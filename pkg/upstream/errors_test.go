package upstream

import (
	"errors"
	"testing"
)

func TestDecodeError_Conflict(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"409 status", 409, `{"message":"duplicate follow"}`},
		{"already following message", 400, `{"message":"User is Already Following this chef"}`},
		{"structured code", 400, `{"code":"ALREADY_FOLLOWING","message":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeError(tt.status, []byte(tt.body))
			if !errors.Is(err, ErrAlreadyFollowing) {
				t.Errorf("expected ErrAlreadyFollowing, got %v", err)
			}
			if !IsConflict(err) {
				t.Error("IsConflict should report true")
			}
		})
	}
}

func TestDecodeError_NotFollowing(t *testing.T) {
	err := decodeError(400, []byte(`{"message":"user is not following target"}`))
	if !errors.Is(err, ErrNotFollowing) {
		t.Errorf("expected ErrNotFollowing, got %v", err)
	}
	if IsConflict(err) {
		t.Error("not-following must not classify as conflict")
	}
}

func TestDecodeError_Classes(t *testing.T) {
	var upErr *Error

	err := decodeError(503, []byte(`{"error":"down"}`))
	if !errors.As(err, &upErr) {
		t.Fatal("expected *Error")
	}
	if upErr.ErrorClass != ErrorClassServer {
		t.Errorf("class = %s, want server", upErr.ErrorClass)
	}
	if upErr.Message != "down" {
		t.Errorf("message = %q, want %q", upErr.Message, "down")
	}

	err = decodeError(404, nil)
	if !errors.As(err, &upErr) {
		t.Fatal("expected *Error")
	}
	if upErr.ErrorClass != ErrorClassClient {
		t.Errorf("class = %s, want client", upErr.ErrorClass)
	}
	// Empty body falls back to the status text.
	if upErr.Message == "" {
		t.Error("expected non-empty message for empty body")
	}
}

func TestDecodeError_NonJSONBody(t *testing.T) {
	err := decodeError(500, []byte("<html>Internal Server Error</html>"))
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatal("expected *Error")
	}
	if upErr.StatusCode != 500 {
		t.Errorf("status = %d, want 500", upErr.StatusCode)
	}
}
