// Package apperror defines the classified error representation used across
// the service: a machine-readable kind, a human message, an HTTP status and
// a trust flag separating anticipated domain conditions from unknown faults.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds raised by the order workflow.
const (
	KindInvalidOrder       = "invalid-order"
	KindUserDoesntExist    = "user-doesnt-exist"
	KindVerificationFailed = "user-verification-failed"
	KindUnknown            = "unknown-error"
)

// AppError carries everything the boundary handler needs to log, measure and
// translate a failure. Trusted is a tri-state: nil means the thrower did not
// decide, and the handler defaults it to trusted so ordinary domain errors
// never take the process down.
type AppError struct {
	Kind    string
	Message string
	Status  int
	Trusted *bool
}

func New(kind, message string, status int) *AppError {
	return &AppError{Kind: kind, Message: message, Status: status}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// MarkUntrusted flags the error as an unanticipated fault. The boundary
// handler terminates the process on these.
func (e *AppError) MarkUntrusted() *AppError {
	trusted := false
	e.Trusted = &trusted
	return e
}

// IsTrusted reports the resolved trust flag, defaulting to true when unset.
func (e *AppError) IsTrusted() bool {
	return e.Trusted == nil || *e.Trusted
}

// Normalize converts an arbitrary failure value into one canonical AppError.
// Request handlers and the recovery hook can surface anything: a classified
// error, a plain error, a panic with a string or a number, or nil. Anything
// that is not already an AppError becomes a 500 with the unknown kind and is
// left trusted so a malformed throw cannot start a crash loop.
func Normalize(v any) *AppError {
	switch failure := v.(type) {
	case nil:
		return New(KindUnknown, "unknown failure with no value", http.StatusInternalServerError)
	case *AppError:
		return failure
	case error:
		var appErr *AppError
		if errors.As(failure, &appErr) {
			return appErr
		}
		return New(KindUnknown, failure.Error(), http.StatusInternalServerError)
	case string:
		return New(KindUnknown, failure, http.StatusInternalServerError)
	default:
		return New(KindUnknown, fmt.Sprintf("%v", failure), http.StatusInternalServerError)
	}
}
