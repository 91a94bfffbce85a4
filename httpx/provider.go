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

package httpx

import (
	"sync"

	"dirpx.dev/callable/apis"
)

// Provider hands out one Client per application name and project. It is
// safe for concurrent use.
type Provider struct {
	opts Options

	mu      sync.Mutex
	clients map[nativeApp]*Client
}

var _ apis.Provider = (*Provider)(nil)

// NewProvider returns a Provider configured with opts.
func NewProvider(opts Options) *Provider {
	return &Provider{
		opts:    opts.withDefaults(),
		clients: make(map[nativeApp]*Client),
	}
}

// Default returns the client of the default application, bound to
// Options.ProjectID.
func (p *Provider) Default() apis.NativeClient {
	return p.client(nativeApp{name: apis.DefaultAppName, project: p.opts.ProjectID})
}

// ForApp returns the client of a. An app without a project falls back to
// Options.ProjectID.
func (p *Provider) ForApp(a apis.NativeApp) apis.NativeClient {
	na := nativeApp{name: a.Name(), project: a.ProjectID()}
	if na.name == "" {
		na.name = apis.DefaultAppName
	}
	if na.project == "" {
		na.project = p.opts.ProjectID
	}
	return p.client(na)
}

func (p *Provider) client(a nativeApp) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[a]; ok {
		return c
	}
	c := newClient(a, p.opts)
	p.clients[a] = c
	return c
}

type nativeApp struct {
	name    string
	project string
}

func (a nativeApp) Name() string      { return a.name }
func (a nativeApp) ProjectID() string { return a.project }
