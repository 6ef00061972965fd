// Package domainerrors defines coded errors returned by governance services.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate them
// into a coded Error so transports can map codes to responses without inspecting
// messages. Codes mirror the rejection kinds of the governance engine.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a rejected operation.
type Code string

const (
	CodeUnauthorized     Code = "unauthorized"
	CodeUnauthenticated  Code = "unauthenticated"
	CodeInvalidResidence Code = "invalid_residence"
	CodeInvalidAddress   Code = "invalid_address"
	CodeNotAResident     Code = "not_a_resident"
	CodeProtectedRole    Code = "protected_role"
	CodeAlreadyExists    Code = "already_exists"
	CodeNotFound         Code = "not_found"
	CodeInvalidState     Code = "invalid_state"
	CodeInvalidChoice    Code = "invalid_choice"
	CodeAlreadyVoted     Code = "already_voted"
	CodeNoImplementation Code = "no_implementation"
	CodeBadRequest       Code = "bad_request"
	CodeInternal         Code = "internal_error"
)

// Error is a domain error carrying a Code and a caller-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any error in the chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if errors.As(err, &de) {
			if de.Code == code {
				return true
			}
			err = de.Err
			continue
		}
		return false
	}
	return false
}

// Is is shorthand for HasCode, kept for handler call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in the chain, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost coded message, or an empty string.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
