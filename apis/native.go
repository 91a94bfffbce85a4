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

package apis

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// FunctionsErrorDomain is the error domain native layers report for
// failures raised by the callable-functions client itself. Only errors from
// this domain carry a details payload.
const FunctionsErrorDomain = "com.firebase.functions"

// FunctionsErrorDetailsKey is the UserInfo key under which native errors of
// FunctionsErrorDomain carry the remote details payload.
const FunctionsErrorDetailsKey = "details"

// DefaultAppName is the name of the application used when the host does not
// supply one.
const DefaultAppName = "[DEFAULT]"

// NativeApp is the native application reference a client is scoped to.
type NativeApp interface {
	// Name returns the application name, DefaultAppName for the default app.
	Name() string
	// ProjectID returns the cloud project the application belongs to.
	ProjectID() string
}

// Provider resolves native clients. It replaces the process-wide registry
// the platform SDKs use: hosts construct one and hand it to functions.New.
type Provider interface {
	// Default returns the client of the default application.
	Default() NativeClient
	// ForApp returns the client scoped to app.
	ForApp(app NativeApp) NativeClient
}

// NativeClient is the native callable-functions client.
//
// Implementations must be safe for concurrent use; the adapter performs no
// locking around them.
type NativeClient interface {
	// HTTPSCallable returns the native callable bound to name.
	HTTPSCallable(name string) NativeCallable

	// UseEmulator redirects every subsequent call of every callable derived
	// from this client to http://host:port.
	UseEmulator(host string, port int)

	// UseEmulatorOrigin is UseEmulator taking a full origin
	// ("http://localhost:5001").
	UseEmulatorOrigin(origin string)

	// App returns the application this client is scoped to.
	App() NativeApp
}

// NativeResult is the success value of a native invocation.
type NativeResult struct {
	// Data is the result payload in wire representation. Nil means the
	// remote function returned nothing.
	Data *structpb.Value
}

// Completion receives the outcome of a native invocation. Exactly one of
// result and err is non-nil, and a native layer calls it exactly once.
type Completion func(result *NativeResult, err NativeError)

// NativeCallable is an invocable native handle bound to one function name.
type NativeCallable interface {
	// SetTimeout sets the per-call deadline enforced by the native layer.
	// Non-positive values restore the native default.
	SetTimeout(d time.Duration)

	// Timeout returns the deadline currently in effect.
	Timeout() time.Duration

	// Call invokes the function without a payload. It returns immediately;
	// done is called asynchronously.
	Call(ctx context.Context, done Completion)

	// CallWithObject invokes the function with payload. It returns
	// immediately; done is called asynchronously.
	CallWithObject(ctx context.Context, payload *structpb.Value, done Completion)
}

// NativeError is a failure reported by the native layer.
type NativeError interface {
	error

	// Code returns the native numeric code. Values follow the canonical
	// gRPC numbering; anything else is treated as unknown.
	Code() int

	// Domain returns the error domain, FunctionsErrorDomain for errors
	// raised by the callable-functions client.
	Domain() string

	// LocalizedDescription returns the human-readable description.
	LocalizedDescription() string

	// UserInfo returns auxiliary values keyed by well-known keys such as
	// FunctionsErrorDetailsKey. May return nil.
	UserInfo() map[string]any
}
