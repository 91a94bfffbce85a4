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

type builder struct {
	// httpDefaults holds per-code HTTP defaults (library + user).
	httpDefaults map[code.Code]int
	// grpcDefaults holds per-code gRPC defaults as ints; converted in New().
	grpcDefaults map[code.Code]int
	// httpOverride holds exact per-code HTTP overrides (higher than defaults).
	httpOverride map[code.Code]int
	// grpcOverride holds exact per-code gRPC overrides as ints.
	grpcOverride map[code.Code]int
	// httpCodes holds the reverse HTTP status -> code table.
	httpCodes map[int]code.Code
	// global fallbacks used when a code has no mapping at all.
	fallbackHTTP int
	fallbackGRPC codes.Code
	fallbackCode code.Code
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]int, len(defaultGRPC)),
		// overrides are usually few
		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
		httpCodes:    make(map[int]code.Code, len(defaultCodes)),
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Unknown,
		fallbackCode: code.Unknown,
	}
}

// freezeInts makes an immutable copy of a builder map.
func freezeInts(src map[code.Code]int) map[code.Code]int {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPC makes an immutable copy of a builder map, converting int
// values into typed gRPC codes.
func freezeGRPC(src map[code.Code]int) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}

// freezeCodes makes an immutable copy of the reverse table.
func freezeCodes(src map[int]code.Code) map[int]code.Code {
	dst := make(map[int]code.Code, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
