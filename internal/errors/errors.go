package errors

import "fmt"

// Kind classifies a domain error for HTTP mapping. Conflicts and lifecycle
// violations deliberately map to 400, matching the existing client contract.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindLifecycle
)

// DomainError carries a user-facing message together with its kind. The
// message text is part of the external contract and is surfaced verbatim.
type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func Validation(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) error {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) error {
	return &DomainError{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &DomainError{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) error {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error {
	return &DomainError{Kind: KindConflict, Message: msg}
}

func Conflictf(format string, args ...interface{}) error {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Lifecycle(msg string) error {
	return &DomainError{Kind: KindLifecycle, Message: msg}
}
