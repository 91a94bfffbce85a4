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

// ViewProvider is implemented by errors that can produce a transport-friendly,
// self-contained representation of themselves.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is the serializable shape of a callable-function error as
// surfaced to script hosts and logs: {code, message, details}.
//
// The native error is deliberately absent; it has no portable encoding.
type ErrorView struct {
	// Code is the canonical error code, e.g. "invalid_argument".
	Code string `json:"code"`

	// Message is the human-friendly message, verbatim.
	Message string `json:"message"`

	// Details is the payload attached by the remote function, or nil.
	Details any `json:"details"`
}
