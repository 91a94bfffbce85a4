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

import "google.golang.org/grpc/codes"

// FromNative maps a native error code value onto the vocabulary.
//
// The mapping is total: every int yields exactly one member, and values the
// platform SDKs do not define (negative, >16) yield Unknown.
func FromNative(n int) Code {
	switch n {
	case 0:
		return OK
	case 1:
		return Cancelled
	case 2:
		return Unknown
	case 3:
		return InvalidArgument
	case 4:
		return DeadlineExceeded
	case 5:
		return NotFound
	case 6:
		return AlreadyExists
	case 7:
		return PermissionDenied
	case 8:
		return ResourceExhausted
	case 9:
		return FailedPrecondition
	case 10:
		return Aborted
	case 11:
		return OutOfRange
	case 12:
		return Unimplemented
	case 13:
		return Internal
	case 14:
		return Unavailable
	case 15:
		return DataLoss
	case 16:
		return Unauthenticated
	default:
		return Unknown
	}
}

// Native returns the native code value of c. Codes outside the vocabulary
// report the native value of Unknown.
func (c Code) Native() int {
	if n, ok := known[c]; ok {
		return n
	}
	return known[Unknown]
}

// FromGRPC maps a gRPC status code onto the vocabulary.
// gRPC and the native SDKs share the same numbering.
func FromGRPC(c codes.Code) Code {
	if uint32(c) > uint32(len(all)-1) {
		return Unknown
	}
	return FromNative(int(c))
}

// GRPC returns the gRPC status code matching c.
func (c Code) GRPC() codes.Code {
	return codes.Code(uint32(c.Native()))
}

// Retryable reports whether c is conventionally transient.
//
// DeadlineExceeded, Unavailable, ResourceExhausted and Aborted are
// retryable; every other code is permanent. The adapter never acts on this
// classification itself.
func Retryable(c Code) bool {
	switch c {
	case DeadlineExceeded, Unavailable, ResourceExhausted, Aborted:
		return true
	default:
		return false
	}
}
