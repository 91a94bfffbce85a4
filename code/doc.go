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

// Package code provides the closed vocabulary of callable-function error
// codes together with parsing, normalization and native mappings.
//
// A "code" is the top-level, machine-readable outcome category of a
// callable invocation, such as "invalid_argument", "not_found" or
// "deadline_exceeded". Codes are:
//
//   - a closed set of 17 members;
//   - lowercased and underscore-separated in canonical form;
//   - numbered on the native side exactly like canonical gRPC statuses.
//
// FromNative is total over all native values: anything the platform SDKs do
// not define folds into Unknown.
package code
