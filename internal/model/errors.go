package model

import (
	"errors"
	"fmt"
)

// Code is a raw result code returned by the native relay engine.
type Code int

// Result codes of the native engine entry points.
const (
	CodeOK             Code = 0
	CodeNullParam      Code = 1
	CodeInvalidHandle  Code = 2
	CodeCreateFailed   Code = 3
	CodeStartFailed    Code = 4
	CodeAlreadyStarted Code = 5
	CodeNotStarted     Code = 6
	CodeInvalidProxy   Code = 7
	CodeInternal       Code = 99
)

var (
	// ErrNullParam is returned when a required parameter is missing or empty.
	ErrNullParam = errors.New("null parameter")
	// ErrInvalidHandle is returned when an operation is used without a live engine handle.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrCreateFailed is returned when the engine could not create a client.
	ErrCreateFailed = errors.New("create failed")
	// ErrStartFailed is returned when the engine could not start the client.
	ErrStartFailed = errors.New("start failed")
	// ErrAlreadyStarted is returned when starting a client that is already started.
	ErrAlreadyStarted = errors.New("already started")
	// ErrNotStarted is returned when an operation requires a started client.
	ErrNotStarted = errors.New("not started")
	// ErrInvalidProxy is returned when a proxy URL is rejected.
	ErrInvalidProxy = errors.New("invalid proxy")
	// ErrInternal is returned on internal engine failures.
	ErrInternal = errors.New("internal error")
	// ErrUnknown is returned when the engine reports a code outside the documented set.
	ErrUnknown = errors.New("unknown error")

	// ErrNotValid is returned when a value fails wrapper-side validation.
	ErrNotValid = errors.New("not valid")
	// ErrLocked is returned when mutating a frozen configuration.
	ErrLocked = errors.New("configuration locked")
)

// catalog maps every documented engine code to its failure kind and text.
var catalog = map[Code]struct {
	kind error
	text string
}{
	CodeNullParam:      {ErrNullParam, "null parameter"},
	CodeInvalidHandle:  {ErrInvalidHandle, "invalid handle"},
	CodeCreateFailed:   {ErrCreateFailed, "client creation failed"},
	CodeStartFailed:    {ErrStartFailed, "client start failed"},
	CodeAlreadyStarted: {ErrAlreadyStarted, "client already started"},
	CodeNotStarted:     {ErrNotStarted, "client not started"},
	CodeInvalidProxy:   {ErrInvalidProxy, "invalid proxy URL"},
	CodeInternal:       {ErrInternal, "internal engine error"},
}

// CodeError is an engine failure translated into a structured error. It keeps
// the original numeric code and unwraps to one of the catalog sentinels so
// callers can match with errors.Is.
type CodeError struct {
	Code Code
	kind error
	text string
}

func (e *CodeError) Error() string { return fmt.Sprintf("%s (code %d)", e.text, e.Code) }

func (e *CodeError) Unwrap() error { return e.kind }

// Describe translates an engine result code into a structured outcome. It
// returns nil for CodeOK and a *CodeError for everything else. Codes outside
// the documented set map to ErrUnknown carrying the raw code. Total, never
// panics.
func Describe(code Code) error {
	if code == CodeOK {
		return nil
	}

	if entry, ok := catalog[code]; ok {
		return &CodeError{Code: code, kind: entry.kind, text: entry.text}
	}

	return &CodeError{Code: code, kind: ErrUnknown, text: "unknown error"}
}

// Text returns the catalog text for an engine result code. Total over all
// integers.
func Text(code Code) string {
	if code == CodeOK {
		return "ok"
	}

	if entry, ok := catalog[code]; ok {
		return entry.text
	}

	return fmt.Sprintf("unknown error code %d", int(code))
}
