/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package callable holds the error type surfaced by every callable-function
// invocation. The client itself lives in package functions.
package callable

import (
	"errors"
	"fmt"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
)

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
	_ apis.NativeBacked  = (*Error)(nil)
	_ apis.ViewProvider  = (*Error)(nil)
)

// Error is the typed failure of a callable-function invocation.
//
// It carries:
//   - Code: outcome category from the closed vocabulary (required);
//   - Message: human-readable description, verbatim from the native layer;
//   - Details: structured payload sent by the remote function, if any;
//   - Native: the original native error, for callers that need lower-level
//     access. Its shape depends on the native implementation;
//   - Cause: a Go error for failures raised by the adapter itself
//     (payload encoding, caller context). Nil for native failures.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared between goroutines.
type Error struct {
	// Code is the outcome category, e.g. "not_found" or "unavailable".
	Code code.Code

	// Message is a human-readable explanation.
	Message string

	// Details is the opaque payload attached by the remote function. It is
	// passed through exactly as extracted and is nil when absent.
	Details any

	// Native is the untouched native error. Treat as read-only.
	Native any

	// Cause holds the wrapped underlying Go error (if any).
	Cause error
}

// E is a convenience constructor for Error.
//
// Usage:
//
//	return callable.E(code.InvalidArgument, "payload cannot be encoded",
//	    callable.WithCauseOption(err),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<code>: <message>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode returns the canonical code string.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorDetails returns the structured details payload. May return nil.
func (e *Error) ErrorDetails() any { return e.Details }

// NativeError returns the original native error. May return nil.
func (e *Error) NativeError() any { return e.Native }

// ErrorView projects e into its serializable form. Native and Cause are
// not part of the view.
func (e *Error) ErrorView() apis.ErrorView {
	return apis.ErrorView{Code: string(e.Code), Message: e.Message, Details: e.Details}
}

// Retryable reports whether the error's code is conventionally transient.
func (e *Error) Retryable() bool {
	if e == nil {
		return false
	}
	return code.Retryable(e.Code)
}

// WithMessage returns a shallow copy of e with a replaced human message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetails returns a shallow copy of e carrying the given details payload.
// The payload is stored as-is.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithNative returns a shallow copy of e referencing the given native error.
func (e *Error) WithNative(native any) *Error {
	cp := *e
	cp.Native = native
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain.
// A nil err yields code.OK; an error without a *Error yields code.Unknown.
func CodeOf(err error) code.Code {
	if err == nil {
		return code.OK
	}
	if e, ok := As(err); ok {
		return e.Code
	}
	return code.Unknown
}

// IsRetryable reports whether err carries a retryable code.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable()
}
