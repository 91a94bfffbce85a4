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

package name

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Name is the canonical, validated name of a callable function.
//
// Names are '-' separated: functions exported in groups are deployed with
// the group path joined by dashes, so they are invoked as "billing-charge".
// Each segment names a group or the function itself. A name is passed to
// the native layer exactly as given; dotted or slashed paths are rejected
// rather than rewritten.
//
// Example valid names:
//
//   - "addMessage"
//   - "billing-charge"
//   - "admin-users-v2_delete"
type Name string

// MinLength and MaxLength define the allowed length range for a name.
// The upper bound is the limit the hosting platform puts on function ids.
const (
	MinLength = 1
	MaxLength = 63
)

const (
	// nameFmt is the canonical regular expression used to validate names.
	//
	// The first segment starts with an ASCII letter; every segment continues
	// with letters, digits or underscore. Later segments may start with a
	// digit ("v2").
	//
	// Examples that DO NOT match:
	//
	//	"1fn"            (digit first)
	//	"billing--charge" (empty segment)
	//	"billing/charge"  (slash)
	nameFmt = `^[A-Za-z][A-Za-z0-9_]*(-[A-Za-z0-9_]+)*$`

	// Separator splits a name into group segments.
	Separator = "-"
)

var nameRe = regexp.MustCompile(nameFmt)

var (
	// ErrNameInvalidFormat is returned when a name does not conform to the
	// expected format.
	ErrNameInvalidFormat = errors.New("callable: invalid function name format")
	// ErrNameInvalidLength is returned when a name is empty or too long.
	ErrNameInvalidLength = errors.New("callable: invalid function name length")
)

// Ensure Name implements encoding.TextMarshaler / encoding.TextUnmarshaler.
var (
	_ encoding.TextMarshaler   = (*Name)(nil)
	_ encoding.TextUnmarshaler = (*Name)(nil)
)

// Empty is the zero-value name. It is never valid.
var Empty Name = ""

// Normalize trims surrounding spaces. Nothing else is rewritten: function
// names are case-sensitive and separators are significant.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Parse normalizes and validates s.
func Parse(s string) (Name, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Name(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Validate checks whether n is in canonical form.
func Validate(n Name) error {
	return validate(string(n))
}

// String returns the canonical string representation of the name.
func (n Name) String() string {
	return string(n)
}

// Segments splits the name into its group segments.
// "billing-charge" yields ["billing", "charge"].
func (n Name) Segments() []string {
	if n == Empty {
		return nil
	}
	return strings.Split(string(n), Separator)
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrNameInvalidLength
	}
	if !nameRe.MatchString(s) {
		return ErrNameInvalidFormat
	}
	return nil
}
