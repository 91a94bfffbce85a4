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

package app

import (
	"testing"

	"dirpx.dev/callable/apis"
)

type stubApp struct{ name, project string }

func (s stubApp) Name() string      { return s.name }
func (s stubApp) ProjectID() string { return s.project }

func TestDefault(t *testing.T) {
	for _, a := range []*App{nil, Default(), {}} {
		if a.Native() != nil {
			t.Fatal("default app has no native reference")
		}
		if a.Name() != apis.DefaultAppName || !a.IsDefault() {
			t.Fatalf("Name() = %q", a.Name())
		}
		if a.ProjectID() != "" {
			t.Fatalf("ProjectID() = %q", a.ProjectID())
		}
	}
}

func TestFromNative(t *testing.T) {
	n := stubApp{name: "secondary", project: "demo-project"}
	a := FromNative(n)
	if a.Native() != n {
		t.Fatal("native reference lost")
	}
	if a.Name() != "secondary" || a.IsDefault() {
		t.Fatalf("Name() = %q", a.Name())
	}
	if a.ProjectID() != "demo-project" {
		t.Fatalf("ProjectID() = %q", a.ProjectID())
	}
	if *FromNative(n) != *a {
		t.Fatal("wrapping must be pure")
	}
}

func TestFromNative_EmptyNameIsDefault(t *testing.T) {
	a := FromNative(stubApp{project: "p"})
	if a.Name() != apis.DefaultAppName {
		t.Fatalf("Name() = %q", a.Name())
	}
}
