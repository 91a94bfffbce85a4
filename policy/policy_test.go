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

package policy

import (
	"testing"
	"time"

	"dirpx.dev/callable/name"
)

func TestTimeout_Resolution(t *testing.T) {
	p, err := New(
		WithDefaultTimeout(70*time.Second),
		WithTimeout("billing-charge", 5*time.Second),
		WithTimeoutPrefix("billing", 30*time.Second),
		WithTimeoutPrefix("admin-*-delete", 2*time.Second),
	)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	tests := []struct {
		name string
		fn   name.Name
		want time.Duration
	}{
		{"exact wins over prefix", "billing-charge", 5 * time.Second},
		{"prefix", "billing-refund", 30 * time.Second},
		{"prefix itself", "billing", 30 * time.Second},
		{"wildcard prefix", "admin-users-delete", 2 * time.Second},
		{"default", "addMessage", 70 * time.Second},
		{"no segment crossing", "billingx", 70 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Timeout(tt.fn)
			if !ok || got != tt.want {
				t.Fatalf("Timeout(%q) = %s, %v; want %s", tt.fn, got, ok, tt.want)
			}
		})
	}
}

func TestTimeout_NoDefault(t *testing.T) {
	p := MustNew(WithTimeout("addMessage", time.Second))
	if _, ok := p.Timeout("other"); ok {
		t.Fatal("no rule and no default must report false")
	}
}

func TestTimeout_ExactTrimmed(t *testing.T) {
	p := MustNew(WithTimeout(" billing-charge ", 3*time.Second))
	if d, ok := p.Timeout("billing-charge"); !ok || d != 3*time.Second {
		t.Fatalf("Timeout() = %s, %v", d, ok)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero default", WithDefaultTimeout(0)},
		{"bad exact name", WithTimeout("1fn", time.Second)},
		{"dotted exact name", WithTimeout("billing.charge", time.Second)},
		{"dotted prefix", WithTimeoutPrefix("billing.refunds", time.Second)},
		{"negative exact", WithTimeout("fn", -time.Second)},
		{"bad prefix", WithTimeoutPrefix("a--b", time.Second)},
		{"wildcard only", WithTimeoutPrefix("*", time.Second)},
		{"zero prefix", WithTimeoutPrefix("billing", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestExplain(t *testing.T) {
	p := MustNew(
		WithDefaultTimeout(time.Minute),
		WithTimeout("billing-charge", 5*time.Second),
		WithTimeoutPrefix("billing", 30*time.Second),
	)
	tests := []struct {
		fn   name.Name
		want string
	}{
		{"billing-charge", "name=\"billing-charge\"\ntimeout: source=exact -> 5s"},
		{"billing-refund", "name=\"billing-refund\"\ntimeout: source=prefix(billing) -> 30s"},
		{"other", "name=\"other\"\ntimeout: source=default -> 1m0s"},
	}
	for _, tt := range tests {
		if got := p.Explain(tt.fn); got != tt.want {
			t.Fatalf("Explain(%q) =\n%s\nwant\n%s", tt.fn, got, tt.want)
		}
	}

	bare := MustNew()
	if got := bare.Explain("x"); got != "name=\"x\"\ntimeout: source=none" {
		t.Fatalf("Explain() = %q", got)
	}
}
