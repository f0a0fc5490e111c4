package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code classifies a contract failure. The ledger network discards the whole
// invocation on any error, so the code is what external callers use to decide
// whether resubmitting can ever succeed.
type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeDuplicate         Code = "DUPLICATE_ERROR"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeCorruption        Code = "CORRUPTED_DATA"
	CodePersistence       Code = "PERSISTENCE_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Metadata describes caller-facing properties of a code.
type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeDuplicate: {
		Retryable:      false,
		PublicMessage:  "record already exists",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "record not found",
		DetailsAllowed: true,
	},
	CodeInvalidTransition: {
		Retryable:      false,
		PublicMessage:  "status transition disallowed",
		DetailsAllowed: true,
	},
	CodeCorruption: {
		Retryable:      false,
		PublicMessage:  "stored record is unreadable",
		DetailsAllowed: false,
	},
	CodePersistence: {
		Retryable:      true,
		PublicMessage:  "ledger unavailable",
		DetailsAllowed: false,
	},
	CodeInternal: {
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

// MetadataFor returns the metadata for a code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is the typed failure every contract operation returns.
type Error struct {
	code    Code
	message string
	cause   error
}

// New builds an error with a code and a human-readable message naming the
// offending field or identifier.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf builds an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message while preserving the underlying cause.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
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

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from an error chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code of the error, CodeInternal for untyped errors and
// "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
