package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeReferential Code = "REFERENTIAL_VIOLATION"
	CodeNotFound    Code = "NOT_FOUND"
	CodeConflict    Code = "CONFLICT"
	CodeIdempotency Code = "IDEMPOTENCY_KEY_REUSED"
	CodeInternal    Code = "INTERNAL_ERROR"
	CodeStore       Code = "STORE_FAILURE"
	CodeDependency  Code = "DEPENDENCY_ERROR"
)

// Metadata is how a code surfaces over HTTP. ClientMessage codes show the
// error's own message; the rest show PublicMessage.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
	ClientMessage  bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:  {HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true, ClientMessage: true},
	CodeReferential: {HTTPStatus: http.StatusBadRequest, PublicMessage: "referenced record does not exist", DetailsAllowed: true, ClientMessage: true},
	CodeNotFound:    {HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found", ClientMessage: true},
	CodeConflict:    {HTTPStatus: http.StatusConflict, PublicMessage: "conflict detected", ClientMessage: true},
	CodeIdempotency: {HTTPStatus: http.StatusConflict, PublicMessage: "idempotency key reused", DetailsAllowed: true, ClientMessage: true},
	CodeInternal:    {HTTPStatus: http.StatusInternalServerError, Retryable: true, PublicMessage: "internal server error"},
	// details carry the failing step and the store's own message
	CodeStore:      {HTTPStatus: http.StatusInternalServerError, PublicMessage: "store operation failed", DetailsAllowed: true},
	CodeDependency: {HTTPStatus: http.StatusServiceUnavailable, Retryable: true, PublicMessage: "dependency unavailable", DetailsAllowed: true},
}

// MetadataFor falls back to CodeInternal for unknown codes.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// InvalidField rejects a single input field.
func InvalidField(field, reason string) *Error {
	return Newf(CodeValidation, "%s %s", field, reason).
		WithDetails(map[string]any{"field": field, "reason": reason})
}

// MissingReference reports a field pointing at a record that does not exist.
func MissingReference(field, reason string) *Error {
	return New(CodeReferential, "referenced record does not exist").
		WithDetails(map[string]any{"field": field, "reason": reason})
}

// Store wraps a persistence failure and records the failing step. Postgres
// constraint violations are promoted to the matching client-facing code.
func Store(err error, step string) *Error {
	details := map[string]any{"step": step}
	if err != nil {
		details["detalhes"] = err.Error()
	}
	code := CodeStore
	if pg, ok := postgresDetail(err); ok {
		switch pg.Code {
		case pgUniqueViolation:
			code = CodeConflict
		case pgForeignKeyViolation:
			code = CodeReferential
		}
	}
	return Wrap(code, err, step).WithDetails(details)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.code, e.message)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the outermost *Error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
