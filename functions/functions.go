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

package functions

import (
	"errors"
	"fmt"
	"sync/atomic"

	"dirpx.dev/callable"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/app"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/name"
	"github.com/sirupsen/logrus"
)

// ErrNoProvider is returned by New when no native provider is given.
var ErrNoProvider = errors.New("functions: nil provider")

// Functions is a callable-functions client scoped to one application.
// It is safe for concurrent use.
type Functions struct {
	native apis.NativeClient
	app    atomic.Pointer[app.App]
	policy apis.CallPolicy
	log    *logrus.Entry
}

// New resolves the native client for a and returns a client around it.
//
// When a carries a native reference the client is scoped to that
// application, otherwise the provider's default client is used. The
// resolution happens once; later changes to a have no effect.
func New(p apis.Provider, a *app.App, opts ...Option) (*Functions, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	var native apis.NativeClient
	if n := a.Native(); n != nil {
		native = p.ForApp(n)
	} else {
		native = p.Default()
	}
	if native == nil {
		return nil, fmt.Errorf("functions: provider returned no client for app %q", a.Name())
	}

	f := &Functions{
		native: native,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// HTTPSCallable returns a handle for the function fn.
//
// The timeout comes from WithTimeout when given, otherwise from the client
// policy. It is applied to the native callable before the handle is
// returned. An invalid name yields an invalid_argument *callable.Error.
func (f *Functions) HTTPSCallable(fn string, opts ...CallableOption) (*Callable, error) {
	n, err := name.Parse(fn)
	if err != nil {
		return nil, callable.E(code.InvalidArgument,
			fmt.Sprintf("invalid function name %q", fn),
			callable.WithCauseOption(err),
		)
	}

	var cfg callableConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.timeout <= 0 && f.policy != nil {
		if d, ok := f.policy.Timeout(n); ok {
			cfg.timeout = d
		}
	}

	nc := f.native.HTTPSCallable(string(n))
	if nc == nil {
		return nil, callable.E(code.Internal, fmt.Sprintf("no native callable for %q", n))
	}
	if cfg.timeout > 0 {
		nc.SetTimeout(cfg.timeout)
	}

	return &Callable{
		name:   n,
		native: nc,
		log:    f.log.WithField("function", string(n)),
	}, nil
}

// UseEmulator redirects every callable of this client to a local emulator.
// Call it before the first invocation.
func (f *Functions) UseEmulator(host string, port int) {
	f.log.WithFields(logrus.Fields{"host": host, "port": port}).Info("functions: using emulator")
	f.native.UseEmulator(host, port)
}

// UseFunctionsEmulatorOrigin is UseEmulator taking a single origin such as
// "http://localhost:5001".
func (f *Functions) UseFunctionsEmulatorOrigin(origin string) {
	f.log.WithField("origin", origin).Info("functions: using emulator origin")
	f.native.UseEmulatorOrigin(origin)
}

// App returns the application handle of the native client. The handle is
// built on first use and the same pointer is returned afterwards.
func (f *Functions) App() *app.App {
	if a := f.app.Load(); a != nil {
		return a
	}
	a := app.FromNative(f.native.App())
	if f.app.CompareAndSwap(nil, a) {
		return a
	}
	return f.app.Load()
}

// Native returns the underlying native client.
func (f *Functions) Native() apis.NativeClient { return f.native }
