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

// Package app models the host application handle a functions client is
// scoped to.
package app

import (
	"dirpx.dev/callable/apis"
)

// App is an application handle. The zero value, and a nil *App, stand for
// the default application.
//
// An App optionally wraps a native application reference; functions.New
// uses it to pick the native client scoped to that application.
type App struct {
	native apis.NativeApp
}

// Default returns a handle for the default application.
func Default() *App { return &App{} }

// FromNative wraps a native application reference. It is pure: wrapping the
// same reference twice yields equivalent handles.
func FromNative(n apis.NativeApp) *App {
	return &App{native: n}
}

// Native returns the wrapped native reference, or nil for the default app.
func (a *App) Native() apis.NativeApp {
	if a == nil {
		return nil
	}
	return a.native
}

// Name returns the application name. The default app is "[DEFAULT]".
func (a *App) Name() string {
	if n := a.Native(); n != nil && n.Name() != "" {
		return n.Name()
	}
	return apis.DefaultAppName
}

// ProjectID returns the cloud project the application is bound to, or ""
// when unknown.
func (a *App) ProjectID() string {
	if n := a.Native(); n != nil {
		return n.ProjectID()
	}
	return ""
}

// IsDefault reports whether a names the default application.
func (a *App) IsDefault() bool {
	return a.Name() == apis.DefaultAppName
}
