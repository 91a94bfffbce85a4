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

package nativetest

import (
	"context"
	"sync"
	"time"

	"dirpx.dev/callable/apis"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handler produces the outcome of one recorded call. Exactly one of the
// return values should be non-nil; a nil result with a nil error resolves
// with a null payload.
type Handler func(ctx context.Context, call Call) (*structpb.Value, apis.NativeError)

// Echo resolves every call with its own payload.
func Echo(_ context.Context, call Call) (*structpb.Value, apis.NativeError) {
	return call.Payload, nil
}

// Fail returns a Handler that rejects every call with err.
func Fail(err apis.NativeError) Handler {
	return func(context.Context, Call) (*structpb.Value, apis.NativeError) {
		return nil, err
	}
}

// Call is the record of one native invocation.
type Call struct {
	Function string
	// WithObject is true for the payload entry point.
	WithObject bool
	// Payload is a clone of the wire value handed to the native layer.
	Payload        *structpb.Value
	Timeout        time.Duration
	EmulatorHost   string
	EmulatorPort   int
	EmulatorOrigin string
	App            apis.NativeApp
}

// App is a static native application reference.
type App struct {
	AppName string
	Project string
}

func (a App) Name() string      { return a.AppName }
func (a App) ProjectID() string { return a.Project }

// Provider hands out one Client per application name.
type Provider struct {
	handler Handler

	mu      sync.Mutex
	clients map[string]*Client
}

// NewProvider returns a Provider whose clients answer calls with h.
// A nil h means Echo.
func NewProvider(h Handler) *Provider {
	if h == nil {
		h = Echo
	}
	return &Provider{handler: h, clients: make(map[string]*Client)}
}

var _ apis.Provider = (*Provider)(nil)

// Default returns the client of the default application.
func (p *Provider) Default() apis.NativeClient {
	return p.client(App{AppName: apis.DefaultAppName})
}

// ForApp returns the client scoped to a.
func (p *Provider) ForApp(a apis.NativeApp) apis.NativeClient {
	return p.client(a)
}

// Client returns the concrete client for an application name, creating it
// if needed. Tests use it to inspect recorded calls.
func (p *Provider) Client(appName string) *Client {
	return p.client(App{AppName: appName})
}

func (p *Provider) client(a apis.NativeApp) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[a.Name()]; ok {
		return c
	}
	c := &Client{app: a, handler: p.handler}
	p.clients[a.Name()] = c
	return c
}

// Client is a fake native functions client.
type Client struct {
	app     apis.NativeApp
	handler Handler

	mu     sync.Mutex
	host   string
	port   int
	origin string
	calls  []Call
}

var _ apis.NativeClient = (*Client)(nil)

// HTTPSCallable returns a fresh callable bound to fn.
func (c *Client) HTTPSCallable(fn string) apis.NativeCallable {
	return &Callable{client: c, name: fn}
}

// UseEmulator records the emulator host and port.
func (c *Client) UseEmulator(host string, port int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host, c.port = host, port
}

// UseEmulatorOrigin records the emulator origin.
func (c *Client) UseEmulatorOrigin(origin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = origin
}

// App returns the application the client is scoped to.
func (c *Client) App() apis.NativeApp { return c.app }

// Emulator returns the current emulator settings.
func (c *Client) Emulator() (host string, port int, origin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.host, c.port, c.origin
}

// Calls returns a copy of the recorded calls in issue order.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *Client) record(call Call) Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	call.EmulatorHost, call.EmulatorPort, call.EmulatorOrigin = c.host, c.port, c.origin
	call.App = c.app
	c.calls = append(c.calls, call)
	return call
}

// Callable is a fake native callable.
type Callable struct {
	client *Client
	name   string

	mu      sync.Mutex
	timeout time.Duration
}

var _ apis.NativeCallable = (*Callable)(nil)

// SetTimeout sets the timeout reported with later calls.
func (c *Callable) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// Timeout returns the current timeout. Zero means unset.
func (c *Callable) Timeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeout
}

// Call issues a call without payload.
func (c *Callable) Call(ctx context.Context, done apis.Completion) {
	c.issue(ctx, Call{Function: c.name}, done)
}

// CallWithObject issues a call carrying payload.
func (c *Callable) CallWithObject(ctx context.Context, payload *structpb.Value, done apis.Completion) {
	var cp *structpb.Value
	if payload != nil {
		cp = proto.Clone(payload).(*structpb.Value)
	}
	c.issue(ctx, Call{Function: c.name, WithObject: true, Payload: cp}, done)
}

func (c *Callable) issue(ctx context.Context, call Call, done apis.Completion) {
	call.Timeout = c.Timeout()
	call = c.client.record(call)
	h := c.client.handler
	go func() {
		res, err := h(ctx, call)
		if err != nil {
			done(nil, err)
			return
		}
		done(&apis.NativeResult{Data: res}, nil)
	}()
}
