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

package adapter

import (
	"errors"

	"dirpx.dev/callable"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
)

// ToError translates a native failure into a *callable.Error.
//
// The translation is pure:
//   - Code is code.FromNative of the native code, so unknown values become
//     code.Unknown;
//   - Message is the native localized description, verbatim;
//   - Details is extracted from UserInfo only when the native error belongs
//     to apis.FunctionsErrorDomain, and is nil otherwise;
//   - Native references the original error.
//
// A nil native error yields nil.
func ToError(nerr apis.NativeError) *callable.Error {
	if nerr == nil {
		return nil
	}
	var details any
	if nerr.Domain() == apis.FunctionsErrorDomain {
		details = nerr.UserInfo()[apis.FunctionsErrorDetailsKey]
	}
	return &callable.Error{
		Code:    code.FromNative(nerr.Code()),
		Message: nerr.LocalizedDescription(),
		Details: details,
		Native:  nerr,
	}
}

// ToView converts an error into the public apis.ErrorView.
//
// The first apis.ViewProvider in err's chain supplies the view. Other
// errors are reported with code.Unknown and their Error() text. This
// function performs no redaction: details are exposed as-is.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		return vp.ErrorView()
	}
	return apis.ErrorView{
		Code:    string(code.Unknown),
		Message: err.Error(),
	}
}
