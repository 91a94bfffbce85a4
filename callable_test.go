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

package callable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/callable/code"
)

func TestError_Basics(t *testing.T) {
	details := map[string]any{"field": "email"}
	e := E(code.InvalidArgument, "email is malformed",
		WithDetailsOption(details),
		WithNativeOption("native-handle"),
	)

	if e.Code != code.InvalidArgument {
		t.Fatal("code mismatch")
	}
	if e.Details.(map[string]any)["field"] != "email" {
		t.Fatal("details missing")
	}
	if e.Native != "native-handle" {
		t.Fatal("native missing")
	}

	s := e.Error()
	for _, sub := range []string{"invalid_argument", "email is malformed"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(code.Internal, "boom")
	e2 := e1.WithDetails("d").WithMessage("other")

	if e1.Details != nil || e1.Message != "boom" {
		t.Fatal("original mutated")
	}
	if e2.Details != "d" || e2.Message != "other" {
		t.Fatal("copy not updated")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("nil cause must return the receiver")
	}
}

func TestAs_And_CodeOf(t *testing.T) {
	inner := E(code.NotFound, "no such function")
	wrapped := fmt.Errorf("calling: %w", inner)

	got, ok := As(wrapped)
	if !ok || got != inner {
		t.Fatalf("As() = %v, %v; want inner error", got, ok)
	}
	if CodeOf(wrapped) != code.NotFound {
		t.Fatalf("CodeOf(wrapped) = %q", CodeOf(wrapped))
	}
	if CodeOf(nil) != code.OK {
		t.Fatal("CodeOf(nil) must be ok")
	}
	if CodeOf(context.Canceled) != code.Unknown {
		t.Fatal("CodeOf(foreign) must be unknown")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(E(code.Unavailable, "down")) {
		t.Fatal("unavailable must be retryable")
	}
	if IsRetryable(E(code.PermissionDenied, "no")) {
		t.Fatal("permission_denied must not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatal("foreign errors are never retryable")
	}
}

func TestNilError_String(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil Error() = %q", e.Error())
	}
	if e.Retryable() {
		t.Fatal("nil error must not be retryable")
	}
}
