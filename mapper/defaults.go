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

package mapper

import (
	"net/http"

	"dirpx.dev/callable/code"
	"google.golang.org/grpc/codes"
)

// statusClientClosedRequest is the non-standard (nginx) status the callable
// protocol uses for cancelled calls.
const statusClientClosedRequest = 499

// defaultHTTP defines the status a server answers with for each code.
// The table matches what callable-function runtimes send.
var defaultHTTP = map[code.Code]int{
	code.OK: http.StatusOK,

	// 4xx — the caller can fix the request.
	code.InvalidArgument:    http.StatusBadRequest,
	code.FailedPrecondition: http.StatusBadRequest,
	code.OutOfRange:         http.StatusBadRequest,
	code.Unauthenticated:    http.StatusUnauthorized,
	code.PermissionDenied:   http.StatusForbidden,
	code.NotFound:           http.StatusNotFound,
	code.AlreadyExists:      http.StatusConflict,
	code.Aborted:            http.StatusConflict,
	code.ResourceExhausted:  http.StatusTooManyRequests,
	code.Cancelled:          statusClientClosedRequest,

	// 5xx — server side or transient.
	code.Unknown:          http.StatusInternalServerError,
	code.Internal:         http.StatusInternalServerError,
	code.DataLoss:         http.StatusInternalServerError,
	code.Unimplemented:    http.StatusNotImplemented,
	code.Unavailable:      http.StatusServiceUnavailable,
	code.DeadlineExceeded: http.StatusGatewayTimeout,
}

// defaultGRPC maps each code to the canonical gRPC status sharing its number.
var defaultGRPC = func() map[code.Code]codes.Code {
	m := make(map[code.Code]codes.Code, len(code.All()))
	for _, c := range code.All() {
		m[c] = c.GRPC()
	}
	return m
}()

// defaultCodes defines how a client classifies an HTTP status when the
// response body carries no error envelope. 409 is ambiguous on the server
// side (already_exists and aborted); clients read it as aborted.
var defaultCodes = map[int]code.Code{
	http.StatusOK:                  code.OK,
	http.StatusBadRequest:          code.InvalidArgument,
	http.StatusUnauthorized:        code.Unauthenticated,
	http.StatusForbidden:           code.PermissionDenied,
	http.StatusNotFound:            code.NotFound,
	http.StatusConflict:            code.Aborted,
	http.StatusTooManyRequests:     code.ResourceExhausted,
	statusClientClosedRequest:      code.Cancelled,
	http.StatusInternalServerError: code.Internal,
	http.StatusNotImplemented:      code.Unimplemented,
	http.StatusServiceUnavailable:  code.Unavailable,
	http.StatusGatewayTimeout:      code.DeadlineExceeded,
}
