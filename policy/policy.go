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
	"fmt"
	"strings"
	"time"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/name"
	"dirpx.dev/callable/policy/internal/segmenttrie"
)

type builder struct {
	exact          map[string]time.Duration
	prefix         map[string]time.Duration
	defaultTimeout time.Duration
	hasDefault     bool
}

// New constructs an immutable apis.CallPolicy.
//
// Exact names are normalized and validated like any function name. Prefix
// rules are validated by the segment trie. Every duration must be positive.
func New(opts ...Option) (apis.CallPolicy, error) {
	b := &builder{
		exact:  make(map[string]time.Duration),
		prefix: make(map[string]time.Duration),
	}
	for _, opt := range opts {
		opt(b)
	}

	p := &policy{
		exact: make(map[name.Name]time.Duration, len(b.exact)),
		trie:  segmenttrie.New[time.Duration](),
	}

	if b.hasDefault {
		if b.defaultTimeout <= 0 {
			return nil, fmt.Errorf("policy: default timeout %s must be positive", b.defaultTimeout)
		}
		p.defaultTimeout = b.defaultTimeout
		p.hasDefault = true
	}

	for raw, d := range b.exact {
		n, err := name.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("policy: timeout rule %q: %w", raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("policy: timeout %s for %q must be positive", d, n)
		}
		p.exact[n] = d
	}

	for raw, d := range b.prefix {
		prefix := name.Normalize(raw)
		if d <= 0 {
			return nil, fmt.Errorf("policy: timeout %s for prefix %q must be positive", d, prefix)
		}
		if err := p.trie.Insert(prefix, d); err != nil {
			return nil, fmt.Errorf("policy: timeout prefix %q: %w", raw, err)
		}
		p.prefixes++
	}

	return p, nil
}

// MustNew is New that panics on error. Intended for static rule sets.
func MustNew(opts ...Option) apis.CallPolicy {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

type policy struct {
	exact          map[name.Name]time.Duration
	trie           *segmenttrie.Trie[time.Duration]
	prefixes       int
	defaultTimeout time.Duration
	hasDefault     bool
}

// Timeout resolves the timeout for fn. The boolean is false when no rule
// and no default apply.
func (p *policy) Timeout(fn name.Name) (time.Duration, bool) {
	if d, ok := p.exact[fn]; ok {
		return d, true
	}
	if p.prefixes > 0 {
		if d, ok := p.trie.Match(string(fn)); ok {
			return d, true
		}
	}
	if p.hasDefault {
		return p.defaultTimeout, true
	}
	return 0, false
}

// Explain produces a textual trace of how the timeout for fn was resolved.
//
// Example output:
//
//	name="billing-charge"
//	timeout: source=prefix(billing) -> 30s
func (p *policy) Explain(fn name.Name) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "name=%q\n", fn)
	if d, ok := p.exact[fn]; ok {
		_, _ = fmt.Fprintf(&b, "timeout: source=exact -> %s", d)
		return b.String()
	}
	if d, ok, pattern := p.trie.MatchWithPattern(string(fn)); ok {
		_, _ = fmt.Fprintf(&b, "timeout: source=prefix(%s) -> %s", pattern, d)
		return b.String()
	}
	if p.hasDefault {
		_, _ = fmt.Fprintf(&b, "timeout: source=default -> %s", p.defaultTimeout)
		return b.String()
	}
	b.WriteString("timeout: source=none")
	return b.String()
}
