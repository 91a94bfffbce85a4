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
	"time"
)

// Option configures the Policy at build time.
type Option func(*builder)

// WithDefaultTimeout sets the timeout used when no name rule matches.
func WithDefaultTimeout(d time.Duration) Option {
	return func(b *builder) {
		b.defaultTimeout = d
		b.hasDefault = true
	}
}

// WithTimeout registers a timeout for one exact function name.
func WithTimeout(fn string, d time.Duration) Option {
	return func(b *builder) { b.exact[fn] = d }
}

// WithTimeoutPrefix registers a timeout for every function whose name
// starts with the given dash-separated segments. A "*" segment matches any
// single segment.
func WithTimeoutPrefix(prefix string, d time.Duration) Option {
	return func(b *builder) { b.prefix[prefix] = d }
}
