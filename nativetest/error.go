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

package nativetest

import (
	"dirpx.dev/callable/apis"
)

// Error is a fake native error.
type Error struct {
	NativeCode int
	ErrDomain  string
	Message    string
	Info       map[string]any
}

var _ apis.NativeError = (*Error)(nil)

// NewError returns an error in the functions domain.
func NewError(nativeCode int, msg string) *Error {
	return &Error{NativeCode: nativeCode, ErrDomain: apis.FunctionsErrorDomain, Message: msg}
}

// WithDetails returns a copy carrying details under the functions key.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Info = make(map[string]any, len(e.Info)+1)
	for k, v := range e.Info {
		cp.Info[k] = v
	}
	cp.Info[apis.FunctionsErrorDetailsKey] = details
	return &cp
}

// WithDomain returns a copy reporting a different error domain.
func (e *Error) WithDomain(domain string) *Error {
	cp := *e
	cp.ErrDomain = domain
	return &cp
}

func (e *Error) Error() string                { return e.Message }
func (e *Error) Code() int                    { return e.NativeCode }
func (e *Error) Domain() string               { return e.ErrDomain }
func (e *Error) LocalizedDescription() string { return e.Message }
func (e *Error) UserInfo() map[string]any     { return e.Info }
