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

// Package mapper provides deterministic, immutable mappings between
// callable-function codes (dirpx.dev/callable/code) and transport-level
// statuses for HTTP and gRPC.
//
// # Overview
//
// The callable protocol runs over HTTP. A server projects a failed call onto
// an HTTP status plus an error envelope; a client that receives a response
// without an envelope has only the HTTP status to go on. Package mapper
// covers both directions:
//
//   - code -> HTTP / gRPC status (server side, bridges);
//   - HTTP status -> code (client side, envelope-less responses).
//
// A Mapper is:
//
//   - immutable — a snapshot, safe for concurrent reuse;
//   - overridable — callers can change library defaults per code;
//   - dual — HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses for a code in the following order:
//
//  1. exact override for the code;
//  2. per-code default (library or user-adjusted);
//  3. global fallback (500 / codes.Unknown).
//
// HTTP statuses resolve to codes through a single table; statuses that are
// not in the table resolve to code.Unknown.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.Cancelled, http.StatusRequestTimeout),
//	    mapper.WithHTTPCode(http.StatusGone, code.NotFound),
//	)
//
//	st := m.Status(code.Unavailable)
//	// st.HTTP == 503, st.GRPC == codes.Unavailable
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a code was resolved.
// It is intended for inspection and logging, not for stable machine parsing.
package mapper
