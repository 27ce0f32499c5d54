package apperr

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an application error into one of four buckets.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindDomain         Kind = "domain"
	KindInfrastructure Kind = "infrastructure"
	KindThirdParty     Kind = "third_party"
)

// Error is the single structured error type returned across all data-access
// and service boundaries. Every instance carries the operation tag of the
// call site, a generated trace id and a timestamp; the remaining fields are
// populated per kind.
type Error struct {
	Kind      Kind      `json:"kind"`
	Operation string    `json:"operation"`
	TraceID   string    `json:"trace_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Err       error     `json:"-"`

	// Validation context
	Field    string `json:"field,omitempty"`
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`

	// Domain context
	Code      string `json:"code,omitempty"`
	UserID    int32  `json:"user_id,omitempty"`
	ChamberID int32  `json:"chamber_id,omitempty"`

	// Infrastructure context
	Service  string `json:"service,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`

	// Third-party context
	Provider    string `json:"provider,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`
	RateLimited bool   `json:"rate_limited,omitempty"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s [%s]: %s: %v", e.Kind, e.Operation, e.TraceID, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s [%s]: %s", e.Kind, e.Operation, e.TraceID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, operation, message string) *Error {
	return &Error{
		Kind:      kind,
		Operation: operation,
		TraceID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Message:   message,
	}
}

// Validation builds an input/schema rejection error.
func Validation(operation, field, message string) *Error {
	e := newError(KindValidation, operation, message)
	e.Field = field
	return e
}

// Domain builds a business-rule violation error.
func Domain(operation, code, message string) *Error {
	e := newError(KindDomain, operation, message)
	e.Code = code
	return e
}

// Infrastructure builds a datastore/network failure error wrapping err.
func Infrastructure(operation, service string, err error) *Error {
	e := newError(KindInfrastructure, operation, "infrastructure failure")
	e.Service = service
	e.Err = err
	return e
}

// ThirdParty builds an external API failure error wrapping err.
func ThirdParty(operation, provider string, err error) *Error {
	e := newError(KindThirdParty, operation, "third-party failure")
	e.Provider = provider
	e.Err = err
	return e
}

// WithChamber attaches tenant context to the error.
func (e *Error) WithChamber(chamberID int32) *Error {
	e.ChamberID = chamberID
	return e
}

// WithUser attaches actor context to the error.
func (e *Error) WithUser(userID int32) *Error {
	e.UserID = userID
	return e
}

// As unwraps err into an *Error, returning nil when err is not one.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// KindOf reports the Kind of err, defaulting unknown errors to infrastructure.
func KindOf(err error) Kind {
	if appErr := As(err); appErr != nil {
		return appErr.Kind
	}
	return KindInfrastructure
}
