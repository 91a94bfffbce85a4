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

package httpx

import (
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/serde"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Error is the native error reported by the HTTP client. It always belongs
// to the functions error domain.
type Error struct {
	code    code.Code
	message string
	details any
	cause   error
}

var _ apis.NativeError = (*Error)(nil)

func newError(c code.Code, msg string, details any, cause error) *Error {
	return &Error{code: c, message: msg, details: details, cause: cause}
}

func (e *Error) Error() string { return e.message }

// Unwrap returns the transport or decoding failure, if any.
func (e *Error) Unwrap() error { return e.cause }

// Code returns the native numeric code.
func (e *Error) Code() int { return e.code.Native() }

func (e *Error) Domain() string { return apis.FunctionsErrorDomain }

func (e *Error) LocalizedDescription() string { return e.message }

// UserInfo carries the details sent by the function under the details key.
func (e *Error) UserInfo() map[string]any {
	if e.details == nil {
		return nil
	}
	return map[string]any{apis.FunctionsErrorDetailsKey: e.details}
}

func decodeDetails(raw string) (any, error) {
	var v structpb.Value
	if err := protojson.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return serde.Deserialize(&v)
}
