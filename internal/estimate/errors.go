package estimate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValidationDetail is one entry of a 422 "detail" list.
type ValidationDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ValidationError is returned when the estimator rejects the payload (HTTP 422).
type ValidationError struct {
	Details []ValidationDetail
	// Raw holds a non-list detail, rendered verbatim.
	Raw string
}

func (e *ValidationError) Error() string {
	return "Validation Error: " + e.summary()
}

func (e *ValidationError) summary() string {
	if len(e.Details) == 0 {
		if e.Raw != "" {
			return e.Raw
		}
		return "Server error: 422"
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		loc := make([]string, 0, len(d.Loc))
		for _, l := range d.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+" - "+d.Msg)
	}
	return strings.Join(parts, ", ")
}

// ServerError is any other non-2xx response.
type ServerError struct {
	Operation  string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error: %d", e.StatusCode)
}

// Message renders err as the single human-readable string shown to users.
// Transport and decode failures surface their raw message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// IsValidation reports whether err is a 422 from the estimator.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func parseValidationError(body []byte) *ValidationError {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return &ValidationError{}
	}

	var details []ValidationDetail
	if err := json.Unmarshal(envelope.Detail, &details); err == nil {
		return &ValidationError{Details: details}
	}

	var raw string
	if err := json.Unmarshal(envelope.Detail, &raw); err == nil {
		return &ValidationError{Raw: raw}
	}
	return &ValidationError{Raw: string(envelope.Detail)}
}
