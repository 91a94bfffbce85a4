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
	"context"
	"net/http"
	"time"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/mapper"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRegion is used when Options.Region is empty.
	DefaultRegion = "us-central1"
	// DefaultTimeout is the per-call deadline when none is set on a callable.
	DefaultTimeout = 70 * time.Second
)

// TokenSource yields the bearer token attached to a request. An empty token
// sends the request unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

// Options configures a Provider. Only ProjectID is required.
type Options struct {
	ProjectID string
	Region    string

	HTTPClient  *http.Client
	TokenSource TokenSource
	Mapper      apis.Mapper
	Metrics     *Metrics
	Logger      *logrus.Entry

	DefaultTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}
	if o.Mapper == nil {
		o.Mapper = mapper.Default()
	}
	if o.Logger == nil {
		o.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if o.DefaultTimeout <= 0 {
		o.DefaultTimeout = DefaultTimeout
	}
	return o
}
