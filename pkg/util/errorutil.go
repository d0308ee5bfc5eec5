package util

import (
	"errors"
	"fmt"
)

// DomainError standardizes application errors. UserMessage is safe to show
// in an interaction reply; Err stays server-side.
type DomainError struct {
	Code        string
	UserMessage string
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, userMessage string) *DomainError {
	return &DomainError{Code: code, UserMessage: userMessage}
}

func NewConfigError(userMessage string) error {
	return NewDomainError("CONFIG_MISSING", userMessage)
}

func NewAlreadyClaimed() error {
	return NewDomainError("ALREADY_CLAIMED", "This ticket has already been claimed.")
}

func NewTicketClosed() error {
	return NewDomainError("TICKET_CLOSED", "This ticket is already closed.")
}

func NewNotTicketChannel(action string) error {
	return NewDomainError("NOT_TICKET_CHANNEL", fmt.Sprintf("%s must be used inside a ticket channel.", action))
}

func NewForbidden(userMessage string) error {
	return NewDomainError("FORBIDDEN", userMessage)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:        "INTERNAL_ERROR",
		UserMessage: "An error occurred.",
		Err:         err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:        "INTERNAL_ERROR",
		UserMessage: "An error occurred.",
		Err:         err,
	}
}

// UserMessage returns the user-safe message for any error. Unknown errors
// collapse to a generic failure notice so internal detail never leaks.
func UserMessage(err error) string {
	return ToDomainError(err).UserMessage
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
