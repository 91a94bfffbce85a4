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

package segmenttrie

import (
	"errors"
	"strings"
)

// Separator splits keys into segments. Function names group with dashes.
const Separator = '-'

// Wildcard matches exactly one segment.
const Wildcard = "*"

// Trie is a segment-aware prefix index for dash-separated function names.
// Each node represents one segment; the wildcard "*" matches exactly one
// segment. The trie supports longest-prefix-match (LPM) with segment
// boundaries, so a more specific rule wins over a shorter one.
type Trie[T any] struct {
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the prefix as inserted, set only when hasVal=true.
	pattern string
}

var (
	// ErrInvalidPrefix is returned when inserting a prefix that is empty,
	// has empty segments, contains invalid characters, or consists only of wildcards.
	ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")
)

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert adds a dash-separated prefix to the trie and associates it with val.
//
// Examples:
//
//	"billing"
//	"billing-charge"
//	"admin-*-delete"
//
// A prefix made only of "*" segments is rejected, because it is too generic.
// Re-inserting a prefix replaces its value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := splitAndValidate(prefix, true)
	if !ok || len(segs) == 0 {
		return ErrInvalidPrefix
	}

	allWild := true
	for _, s := range segs {
		if s != Wildcard {
			allWild = false
			break
		}
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match finds the deepest prefix match for a full name.
// It returns the zero value and false when the name is invalid or nothing
// matches. At equal depth an exact segment beats the wildcard.
func (t *Trie[T]) Match(name string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(name)
	return v, ok
}

// MatchWithPattern is Match that also reports the stored pattern of the
// winning rule, for Explain output.
func (t *Trie[T]) MatchWithPattern(name string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	bestDepth := -1
	var best *Trie[T]

	var dfs func(n *Trie[T], off, depth int)
	dfs = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			best = n
		}
		if off >= len(name) {
			return
		}
		i := off
		for i < len(name) && name[i] != Separator {
			if !segmentByte(name[i]) {
				return
			}
			i++
		}
		if i == off {
			return // empty segment
		}
		seg := name[off:i]
		nextOff := i
		if nextOff < len(name) {
			nextOff++ // skip separator
		}

		// exact first: on equal depth the first visitor keeps the slot
		if next, ok := n.children[seg]; ok {
			dfs(next, nextOff, depth+1)
		}
		if next, ok := n.children[Wildcard]; ok {
			dfs(next, nextOff, depth+1)
		}
	}

	dfs(t, 0, 0)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// splitAndValidate splits a dash-separated string into segments and
// validates each one. When allowWildcard=true, a segment that is exactly
// "*" is accepted.
func splitAndValidate(s string, allowWildcard bool) ([]string, bool) {
	if s == "" {
		return []string{}, true
	}
	segs := strings.Split(s, string(Separator))
	for _, seg := range segs {
		if !validSegment(seg, allowWildcard) {
			return nil, false
		}
	}
	return segs, true
}

// validSegment reports whether seg is a valid trie segment: "*" (when
// allowed) or one or more of [A-Za-z0-9_].
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == Wildcard {
		return true
	}
	for i := 0; i < len(seg); i++ {
		if !segmentByte(seg[i]) {
			return false
		}
	}
	return true
}

func segmentByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
