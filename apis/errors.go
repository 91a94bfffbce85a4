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

package apis

// CodedError represents an error that is classified into the closed
// callable-function code vocabulary.
//
// Implementations are expected to return a canonical code string as
// produced by the code package ("invalid_argument", "not_found", ...).
// Adapters should treat unknown or empty codes as "unknown".
type CodedError interface {
	error

	// ErrorCode returns the machine-readable error code.
	ErrorCode() string
}

// DetailedError represents an error that exposes the structured details
// payload attached by a remote function.
//
// The payload is opaque: it is whatever the remote function attached,
// already converted to plain Go values. Returning nil means "no details".
type DetailedError interface {
	error

	// ErrorDetails returns the details payload. May return nil.
	ErrorDetails() any
}

// NativeBacked is implemented by errors that retain the native error they
// were translated from.
type NativeBacked interface {
	error

	// NativeError returns the original native error. May return nil.
	NativeError() any
}
