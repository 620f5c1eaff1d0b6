package api

import (
	"encoding/json"
	"errors"
)

// DefaultErrorMessage is shown when a failure carries no message of its own.
const DefaultErrorMessage = "Request failed"

// ErrRequestFailed matches every error that came back from the network layer.
var ErrRequestFailed = errors.New("request failed")

// Error is a failed backend call. Status is zero for transport failures.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrRequestFailed
}

// errorMessage pulls the human readable message out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return DefaultErrorMessage
	}
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Message != "" {
		return payload.Message
	}
	return DefaultErrorMessage
}

// StatusOf returns the HTTP status of a backend failure, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
