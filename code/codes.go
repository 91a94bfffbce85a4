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

package code

// Success / generic outcome codes
//
// The numeric comment after each name is the native code value reported by
// the platform SDKs for that outcome. The values coincide with the canonical
// gRPC status codes.
const (
	// OK indicates that the call completed successfully. Native layers never
	// report it as a failure, but it is a member of the vocabulary so that
	// the mapping stays total. Native 0.
	OK Code = "ok"

	// Cancelled indicates that the call was cancelled, typically by the
	// caller. Native 1.
	Cancelled Code = "cancelled"

	// Unknown is the fallback for unrecognized native codes and for errors
	// raised without any usable classification. Native 2.
	Unknown Code = "unknown"

	// Internal indicates that an invariant expected by the underlying system
	// was broken, for example a malformed response envelope. Native 13.
	Internal Code = "internal"
)

// Request / argument codes
//
// These codes describe problems the caller can fix by changing the request.
// Retrying the same request is pointless.
const (
	// InvalidArgument indicates that the caller supplied an invalid
	// argument or a payload that cannot be encoded. Native 3.
	InvalidArgument Code = "invalid_argument"

	// FailedPrecondition indicates that the system is not in a state
	// required for the operation. Native 9.
	FailedPrecondition Code = "failed_precondition"

	// OutOfRange indicates that the operation was attempted past the valid
	// range. Native 11.
	OutOfRange Code = "out_of_range"

	// Unimplemented indicates that the operation is not implemented or not
	// supported by the remote function. Native 12.
	Unimplemented Code = "unimplemented"
)

// Resource state codes
const (
	// NotFound indicates that the requested function or a document it
	// referenced was not found. Native 5.
	NotFound Code = "not_found"

	// AlreadyExists indicates that an entity the call tried to create
	// already exists. Native 6.
	AlreadyExists Code = "already_exists"

	// Aborted indicates that the operation was aborted, typically due to a
	// concurrency issue such as a transaction conflict. Native 10.
	Aborted Code = "aborted"

	// DataLoss indicates unrecoverable data loss or corruption. Native 15.
	DataLoss Code = "data_loss"
)

// Authentication / authorization codes
const (
	// PermissionDenied indicates that the caller is authenticated but does
	// not have permission to execute the function. Native 7.
	PermissionDenied Code = "permission_denied"

	// Unauthenticated indicates that the request does not carry valid
	// authentication credentials. Native 16.
	Unauthenticated Code = "unauthenticated"
)

// Transient / runtime codes
//
// These codes describe conditions that are conventionally worth retrying
// after a backoff. See Retryable.
const (
	// DeadlineExceeded indicates that the deadline expired before the call
	// could complete. The configured per-callable timeout surfaces as this
	// code. Native 4.
	DeadlineExceeded Code = "deadline_exceeded"

	// ResourceExhausted indicates that some resource has been exhausted,
	// for example a per-user quota. Native 8.
	ResourceExhausted Code = "resource_exhausted"

	// Unavailable indicates that the service is currently unavailable.
	// Native 14.
	Unavailable Code = "unavailable"
)

// all lists every member of the vocabulary in native-code order.
// The index of each entry is its native code value.
var all = [...]Code{
	OK,
	Cancelled,
	Unknown,
	InvalidArgument,
	DeadlineExceeded,
	NotFound,
	AlreadyExists,
	PermissionDenied,
	ResourceExhausted,
	FailedPrecondition,
	Aborted,
	OutOfRange,
	Unimplemented,
	Internal,
	Unavailable,
	DataLoss,
	Unauthenticated,
}

// known indexes the vocabulary for membership checks and native lookups.
var known = func() map[Code]int {
	m := make(map[Code]int, len(all))
	for i, c := range all {
		m[c] = i
	}
	return m
}()

// All returns every code of the vocabulary in native-code order.
// The returned slice is a fresh copy.
func All() []Code {
	out := make([]Code, len(all))
	copy(out, all[:])
	return out
}
