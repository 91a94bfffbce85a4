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
	"time"

	"dirpx.dev/callable/apis"
	"github.com/sirupsen/logrus"
)

// Option configures a Functions client.
type Option func(*Functions)

// WithLogger sets the logger used for invocation and emulator entries.
func WithLogger(l *logrus.Entry) Option {
	return func(f *Functions) {
		if l != nil {
			f.log = l
		}
	}
}

// WithPolicy sets the policy consulted for timeouts of callables created
// without an explicit WithTimeout.
func WithPolicy(p apis.CallPolicy) Option {
	return func(f *Functions) { f.policy = p }
}

// CallableOption configures a single callable handle.
type CallableOption func(*callableConfig)

type callableConfig struct {
	timeout time.Duration
}

// WithTimeout overrides the per-call deadline of the native callable.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) CallableOption {
	return func(c *callableConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}
