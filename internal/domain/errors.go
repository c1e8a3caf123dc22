package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so transport layers can map them to status
// codes without string matching.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindImmutableState    ErrorKind = "IMMUTABLE_STATE"
	KindAlreadyApproved   ErrorKind = "ALREADY_APPROVED"
	KindConflict          ErrorKind = "CONFLICT"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindAuthorization     ErrorKind = "AUTHORIZATION"
)

// Error is the typed error returned by all services. The core never retries
// internally; only KindConflict is safe for a caller to retry automatically.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

func InvalidTransitionError(from, to MemberStatus) error {
	return newError(KindInvalidTransition, "no transition from %s to %s", from, to)
}

func ImmutableStateError(format string, args ...any) error {
	return newError(KindImmutableState, format, args...)
}

func AlreadyApprovedError(paymentID int32) error {
	return newError(KindAlreadyApproved, "payment %d is already approved", paymentID)
}

func TemplateInactiveError(templateID int32) error {
	return newError(KindValidation, "template %d is inactive", templateID)
}

func ConflictError(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

func NotFoundError(entity string, id int32) error {
	return newError(KindNotFound, "%s %d not found", entity, id)
}

func AuthorizationError(format string, args ...any) error {
	return newError(KindAuthorization, format, args...)
}

// IsKind reports whether err (or anything it wraps) is a domain Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// KindOf returns the kind of a domain error, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
