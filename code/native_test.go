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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"google.golang.org/grpc/codes"
)

func TestFromNative_Table(t *testing.T) {
	tests := []struct {
		native int
		want   Code
	}{
		{0, OK},
		{1, Cancelled},
		{2, Unknown},
		{3, InvalidArgument},
		{4, DeadlineExceeded},
		{5, NotFound},
		{6, AlreadyExists},
		{7, PermissionDenied},
		{8, ResourceExhausted},
		{9, FailedPrecondition},
		{10, Aborted},
		{11, OutOfRange},
		{12, Unimplemented},
		{13, Internal},
		{14, Unavailable},
		{15, DataLoss},
		{16, Unauthenticated},
		{17, Unknown},
		{-1, Unknown},
		{1 << 20, Unknown},
	}
	for _, tt := range tests {
		if got := FromNative(tt.native); got != tt.want {
			t.Fatalf("FromNative(%d) = %q, want %q", tt.native, got, tt.want)
		}
	}
}

func TestFromNative_TotalAndDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("every native value maps to a vocabulary member", prop.ForAll(
		func(n int) bool {
			return Validate(FromNative(n)) == nil
		},
		gen.Int(),
	))

	properties.Property("mapping is deterministic", prop.ForAll(
		func(n int) bool {
			return FromNative(n) == FromNative(n)
		},
		gen.Int(),
	))

	properties.Property("values outside 0..16 map to unknown", prop.ForAll(
		func(n int) bool {
			if n >= 0 && n <= 16 {
				return true
			}
			return FromNative(n) == Unknown
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestNative_RoundTrip(t *testing.T) {
	for _, c := range All() {
		if got := FromNative(c.Native()); got != c {
			t.Fatalf("FromNative(%q.Native()) = %q", c, got)
		}
	}
	if got := Code("bogus").Native(); got != 2 {
		t.Fatalf("Native() of unknown code = %d, want 2", got)
	}
}

func TestGRPC_MatchesCanonicalCodes(t *testing.T) {
	tests := []struct {
		c    Code
		want codes.Code
	}{
		{OK, codes.OK},
		{Cancelled, codes.Canceled},
		{InvalidArgument, codes.InvalidArgument},
		{DeadlineExceeded, codes.DeadlineExceeded},
		{PermissionDenied, codes.PermissionDenied},
		{Unavailable, codes.Unavailable},
		{Unauthenticated, codes.Unauthenticated},
	}
	for _, tt := range tests {
		if got := tt.c.GRPC(); got != tt.want {
			t.Fatalf("%q.GRPC() = %v, want %v", tt.c, got, tt.want)
		}
		if back := FromGRPC(tt.want); back != tt.c {
			t.Fatalf("FromGRPC(%v) = %q, want %q", tt.want, back, tt.c)
		}
	}
	if got := FromGRPC(codes.Code(99)); got != Unknown {
		t.Fatalf("FromGRPC(99) = %q, want unknown", got)
	}
}

func TestRetryable(t *testing.T) {
	retryable := map[Code]bool{
		DeadlineExceeded:  true,
		Unavailable:       true,
		ResourceExhausted: true,
		Aborted:           true,
	}
	for _, c := range All() {
		if got := Retryable(c); got != retryable[c] {
			t.Fatalf("Retryable(%q) = %v, want %v", c, got, retryable[c])
		}
	}
}
