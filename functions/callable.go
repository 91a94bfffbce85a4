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
	"time"

	"dirpx.dev/callable"
	"dirpx.dev/callable/adapter"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/name"
	"dirpx.dev/callable/serde"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HTTPSCallable is the function-value form of a Callable.
type HTTPSCallable func(ctx context.Context, data any) (any, error)

// Callable is an invocable handle for one remote function. Invocations are
// independent and may complete in any order.
type Callable struct {
	name   name.Name
	native apis.NativeCallable
	log    *logrus.Entry
}

// Name returns the function name the handle is bound to.
func (c *Callable) Name() name.Name { return c.name }

// Timeout returns the timeout currently set on the native callable.
func (c *Callable) Timeout() time.Duration { return c.native.Timeout() }

// Native returns the underlying native callable.
func (c *Callable) Native() apis.NativeCallable { return c.native }

// Invoke starts one invocation.
//
// A nil data uses the no-payload entry point. Anything else is serialized
// and sent through the payload entry point; a value that cannot be
// serialized settles the task with invalid_argument without reaching the
// native layer.
func (c *Callable) Invoke(ctx context.Context, data any) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	t := newTask()
	log := c.log.WithField("call_id", uuid.NewString())
	start := time.Now()

	done := func(res *apis.NativeResult, nerr apis.NativeError) {
		v, err := settle(res, nerr)
		log.WithFields(logrus.Fields{
			"code":     callable.CodeOf(err),
			"duration": time.Since(start),
		}).Debug("functions: call settled")
		t.resolve(v, err)
	}

	if data == nil {
		c.native.Call(ctx, done)
		return t
	}

	payload, err := serde.Serialize(data)
	if err != nil {
		log.WithError(err).Debug("functions: payload rejected")
		t.resolve(nil, callable.E(code.InvalidArgument, "payload cannot be encoded",
			callable.WithCauseOption(err),
		))
		return t
	}
	c.native.CallWithObject(ctx, payload, done)
	return t
}

// Call invokes the function and waits for its outcome.
func (c *Callable) Call(ctx context.Context, data any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.Invoke(ctx, data).Wait(ctx)
}

// Func returns c as a plain function value.
func (c *Callable) Func() HTTPSCallable { return c.Call }

// CallWithRetry calls the function until it succeeds, fails with a code
// that is not retryable, or b gives up. b is bound to ctx.
func (c *Callable) CallWithRetry(ctx context.Context, data any, b backoff.BackOff) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	attempt := 0
	op := func() (any, error) {
		attempt++
		v, err := c.Call(ctx, data)
		if err == nil {
			return v, nil
		}
		if !callable.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		c.log.WithError(err).WithField("attempt", attempt).Debug("functions: retrying call")
		return nil, err
	}

	v, err := backoff.RetryWithData(op, backoff.WithContext(b, ctx))
	if err == nil {
		return v, nil
	}
	if _, ok := callable.As(err); !ok {
		return nil, contextError(err)
	}
	return nil, err
}

// settle turns a native completion into the caller-facing outcome.
func settle(res *apis.NativeResult, nerr apis.NativeError) (any, error) {
	if nerr != nil {
		return nil, adapter.ToError(nerr)
	}
	if res == nil {
		return nil, nil
	}
	v, err := serde.Deserialize(res.Data)
	if err != nil {
		return nil, callable.E(code.Internal, "result cannot be decoded",
			callable.WithCauseOption(err),
		)
	}
	return v, nil
}
