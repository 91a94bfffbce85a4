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

package adapter

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/callable"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
)

type nativeErr struct {
	code   int
	domain string
	desc   string
	info   map[string]any
}

func (e *nativeErr) Error() string                { return e.desc }
func (e *nativeErr) Code() int                    { return e.code }
func (e *nativeErr) Domain() string               { return e.domain }
func (e *nativeErr) LocalizedDescription() string { return e.desc }
func (e *nativeErr) UserInfo() map[string]any     { return e.info }

func TestToError_CodeAndMessage(t *testing.T) {
	for n := -2; n <= 20; n++ {
		ne := &nativeErr{code: n, domain: apis.FunctionsErrorDomain, desc: "Désolé: ça a échoué"}
		e := ToError(ne)
		if e.Code != code.FromNative(n) {
			t.Fatalf("native %d: code = %q, want %q", n, e.Code, code.FromNative(n))
		}
		if e.Message != ne.desc {
			t.Fatalf("message must be verbatim, got %q", e.Message)
		}
		if e.Native != ne {
			t.Fatal("native error must be retained")
		}
	}
}

func TestToError_DetailsOnlyForFunctionsDomain(t *testing.T) {
	details := map[string]any{"field": "amount", "max": int64(100)}

	in := ToError(&nativeErr{
		code:   3,
		domain: apis.FunctionsErrorDomain,
		desc:   "bad amount",
		info:   map[string]any{apis.FunctionsErrorDetailsKey: details},
	})
	if !reflect.DeepEqual(in.Details, details) {
		t.Fatalf("details = %#v, want %#v", in.Details, details)
	}

	other := ToError(&nativeErr{
		code:   3,
		domain: "NSURLErrorDomain",
		desc:   "bad amount",
		info:   map[string]any{apis.FunctionsErrorDetailsKey: details},
	})
	if other.Details != nil {
		t.Fatalf("foreign domain must not carry details, got %#v", other.Details)
	}

	missing := ToError(&nativeErr{code: 13, domain: apis.FunctionsErrorDomain, desc: "x"})
	if missing.Details != nil {
		t.Fatalf("absent details must be nil, got %#v", missing.Details)
	}
}

func TestToError_Nil(t *testing.T) {
	if ToError(nil) != nil {
		t.Fatal("nil native error must translate to nil")
	}
}

func TestToView(t *testing.T) {
	v := ToView(callable.E(code.NotFound, "no fn", callable.WithDetailsOption("d")))
	if v.Code != "not_found" || v.Message != "no fn" || v.Details != "d" {
		t.Fatalf("ToView() = %#v", v)
	}

	foreign := ToView(errors.New("plain"))
	if foreign.Code != "unknown" || foreign.Message != "plain" {
		t.Fatalf("ToView(foreign) = %#v", foreign)
	}

	if (ToView(nil) != apis.ErrorView{}) {
		t.Fatal("ToView(nil) must be empty")
	}
}
