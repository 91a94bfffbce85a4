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
	"context"
	"errors"
	"sync"

	"dirpx.dev/callable"
	"dirpx.dev/callable/code"
)

// Task is the pending outcome of one invocation. It settles exactly once.
type Task struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// resolve settles the task. Only the first call has an effect.
func (t *Task) resolve(v any, err error) {
	t.once.Do(func() {
		t.val, t.err = v, err
		close(t.done)
	})
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the outcome. It must only be called after Done is closed.
func (t *Task) Result() (any, error) {
	select {
	case <-t.done:
		return t.val, t.err
	default:
		return nil, callable.E(code.FailedPrecondition, "task has not settled")
	}
}

// Wait blocks until the task settles or ctx ends. When ctx ends first the
// error is a cancelled or deadline_exceeded *callable.Error wrapping
// ctx.Err(); the task still settles later on its own.
func (t *Task) Wait(ctx context.Context) (any, error) {
	select {
	case <-t.done:
		return t.val, t.err
	default:
	}
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		return nil, contextError(ctx.Err())
	}
}

// contextError converts a context error into a *callable.Error.
func contextError(err error) *callable.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return callable.E(code.DeadlineExceeded, "deadline exceeded", callable.WithCauseOption(err))
	}
	return callable.E(code.Cancelled, "cancelled", callable.WithCauseOption(err))
}
