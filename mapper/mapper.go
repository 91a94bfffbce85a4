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
	"fmt"
	"strings"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP, gRPC, reverse table).
//  2. Apply user-provided options.
//  3. Validate every code and status mentioned by the options.
//  4. Freeze all maps into immutable copies (fresh allocations).
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		// Keep values as int for internal uniformity;
		// convert to codes.Code when freezing the final snapshot.
		b.grpcDefaults[k] = int(v)
	}
	for k, v := range defaultCodes {
		b.httpCodes[k] = v
	}

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		opt(b)
	}

	// (3) Validate.
	for _, tbl := range []map[code.Code]int{b.httpDefaults, b.httpOverride} {
		for c, st := range tbl {
			if err := code.Validate(c); err != nil {
				return nil, fmt.Errorf("mapper: HTTP rule for %q: %w", c, err)
			}
			if st < 100 || st > 599 {
				return nil, fmt.Errorf("mapper: HTTP status %d for code %q out of range", st, c)
			}
		}
	}
	for _, tbl := range []map[code.Code]int{b.grpcDefaults, b.grpcOverride} {
		for c, g := range tbl {
			if err := code.Validate(c); err != nil {
				return nil, fmt.Errorf("mapper: gRPC rule for %q: %w", c, err)
			}
			if g < 0 || g > int(codes.Unauthenticated) {
				return nil, fmt.Errorf("mapper: gRPC status %d for code %q out of range", g, c)
			}
		}
	}
	for st, c := range b.httpCodes {
		if err := code.Validate(c); err != nil {
			return nil, fmt.Errorf("mapper: HTTP status %d maps to %q: %w", st, c, err)
		}
	}

	// (4) Freeze everything into a read-only snapshot.
	m := &mapper{
		httpDefault:  freezeInts(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeInts(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		httpCodes:    freezeCodes(b.httpCodes),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
		fallbackCode: b.fallbackCode,
	}
	return m, nil
}

// Default returns a mapper built from the library defaults only.
func Default() apis.Mapper {
	m, err := New()
	if err != nil {
		// The defaults are static; failing here is a programming error.
		panic(err)
	}
	return m
}

// mapper is an immutable mapper implementation combining per-code
// defaults, per-code exact overrides and a reverse HTTP table. Lookups are
// O(1) and safe for concurrent use once constructed.
type mapper struct {
	httpDefault  map[code.Code]int
	grpcDefault  map[code.Code]codes.Code
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code
	httpCodes    map[int]code.Code

	// fallbackHTTP is used when there is no mapping at all for a code.
	fallbackHTTP int
	// fallbackGRPC is used when there is no mapping at all for a code.
	fallbackGRPC codes.Code
	// fallbackCode classifies HTTP statuses missing from httpCodes.
	fallbackCode code.Code
}

// HTTPStatus resolves an HTTP status for the given code.
//
// Resolution order (highest to lowest):
//  1. exact per-code override;
//  2. per-code default;
//  3. fallback (500).
func (m *mapper) HTTPStatus(c code.Code) int {
	if v, ok := m.httpOverride[c]; ok {
		return v
	}
	if v, ok := m.httpDefault[c]; ok {
		return v
	}
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status for the given code.
// Uses the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code) codes.Code {
	if v, ok := m.grpcOverride[c]; ok {
		return v
	}
	if v, ok := m.grpcDefault[c]; ok {
		return v
	}
	return m.fallbackGRPC
}

// Status resolves both HTTP and gRPC using the same input.
func (m *mapper) Status(c code.Code) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c),
		GRPC: m.GRPCStatus(c),
	}
}

// CodeForHTTP classifies an HTTP status.
func (m *mapper) CodeForHTTP(status int) code.Code {
	if c, ok := m.httpCodes[status]; ok {
		return c
	}
	return m.fallbackCode
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a code.
//
// Example output:
//
//	code="unavailable"
//	http: source=default -> 503
//	grpc: source=default -> UNAVAILABLE(14)
//
// source is one of override, default or fallback.
func (m *mapper) Explain(c code.Code) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q\n", c)
	_, _ = fmt.Fprintln(&b, m.explainHTTP(c))
	_, _ = fmt.Fprintln(&b, m.explainGRPC(c))
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *mapper) explainHTTP(c code.Code) string {
	if v, ok := m.httpOverride[c]; ok {
		return fmt.Sprintf("http: source=override -> %d", v)
	}
	if v, ok := m.httpDefault[c]; ok {
		return fmt.Sprintf("http: source=default -> %d", v)
	}
	return fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

func (m *mapper) explainGRPC(c code.Code) string {
	if v, ok := m.grpcOverride[c]; ok {
		return fmt.Sprintf("grpc: source=override -> %s", grpcName(v))
	}
	if v, ok := m.grpcDefault[c]; ok {
		return fmt.Sprintf("grpc: source=default -> %s", grpcName(v))
	}
	return fmt.Sprintf("grpc: source=fallback -> %s", grpcName(m.fallbackGRPC))
}

// grpcName renders a gRPC code in protocol spelling, e.g. NOT_FOUND(5).
func grpcName(g codes.Code) string {
	return fmt.Sprintf("%s(%d)", code.FromGRPC(g).Status(), int(g))
}
