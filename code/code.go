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

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Code is the canonical representation of a callable-function error code.
//
// It is defined as a separate type (not just string) so that other packages
// can explicitly declare which values they expect and to avoid accidental
// mixing of raw wire input with normalized values.
//
// The vocabulary is closed: only the constants declared in this package are
// valid codes.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
// "ok" is the shortest member, "failed_precondition" the longest.
const (
	MinLength = 2
	MaxLength = 19
)

// functionsPrefix is the namespace the JavaScript SDKs put in front of
// error codes, e.g. "functions/not-found".
const functionsPrefix = "functions/"

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as a member of the vocabulary.
	ErrCodeInvalid = errors.New("callable: invalid code")
)

// Ensure Code implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It is not a member of the vocabulary.
var Empty Code = ""

// Parse takes a user- or wire-provided string, normalizes it and checks
// that it names a member of the vocabulary.
//
// All of the following parse to InvalidArgument:
//
//	"invalid_argument"
//	"INVALID_ARGUMENT"            (protocol status)
//	"invalid-argument"            (JavaScript SDK)
//	"functions/invalid-argument"  (prefixed JavaScript SDK)
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical code form.
//
// It only performs obvious, non-lossy transformations:
//
//   - trims surrounding spaces;
//   - strips the "functions/" namespace;
//   - lowercases the value;
//   - replaces '-' with '_'.
//
// It does NOT guarantee that the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, functionsPrefix)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate checks whether c is a member of the vocabulary.
func Validate(c Code) error {
	return validate(string(c))
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// Status returns the protocol spelling of the code as it appears in the
// "status" field of an error envelope, e.g. "INVALID_ARGUMENT".
func (c Code) Status() string {
	return strings.ToUpper(string(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrCodeInvalid
	}
	if _, ok := known[Code(s)]; !ok {
		return ErrCodeInvalid
	}
	return nil
}
