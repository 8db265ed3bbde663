package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable classification carried by every client-facing
// failure. Handlers map kinds to HTTP statuses.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation_error"
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindPaymentUnavailable ErrorKind = "payment_unavailable"
	KindPaymentRejected    ErrorKind = "payment_rejected"
	KindInternal           ErrorKind = "internal_error"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the classification from err. Anything that is not a
// *domain.Error (storage failures, transaction rollbacks) is internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticatedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}
