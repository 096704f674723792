package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for follow-state conflicts. The backend signals a duplicate
// follow with a 409 (or an "already following" message body, depending on the
// controller); both are normalized here so callers never inspect strings.
var (
	// ErrAlreadyFollowing is returned when a follow mutation targets a user
	// the caller already follows.
	ErrAlreadyFollowing = errors.New("already following")

	// ErrNotFollowing is returned when an unfollow mutation targets a user
	// the caller doesn't follow.
	ErrNotFollowing = errors.New("not following")
)

// ErrorClass represents a classification of backend errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Error carries the structured result of a failed backend call.
type Error struct {
	StatusCode int
	ErrorClass ErrorClass
	Code       string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// classify categorizes an HTTP status code.
func classify(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClassNetwork
	}
}

// decodeError builds a typed error from a failed backend response. This is
// the single place where the backend's loose error contract (status code,
// optional code field, free-text message) is interpreted.
func decodeError(statusCode int, body []byte) error {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// Bodies that aren't JSON still produce a usable typed error.
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	err := &Error{
		StatusCode: statusCode,
		ErrorClass: classify(statusCode),
		Code:       payload.Code,
		Message:    msg,
	}

	lower := strings.ToLower(msg)
	switch {
	case statusCode == http.StatusConflict,
		payload.Code == "ALREADY_FOLLOWING",
		strings.Contains(lower, "already following"):
		err.Err = ErrAlreadyFollowing
	case payload.Code == "NOT_FOLLOWING",
		strings.Contains(lower, "not following"):
		err.Err = ErrNotFollowing
	}

	return err
}

// IsConflict reports whether err is a duplicate-follow conflict, which
// callers treat as idempotent success.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyFollowing)
}
