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
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dirpx.dev/callable"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/app"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/nativetest"
	"dirpx.dev/callable/policy"
	"dirpx.dev/callable/serde"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func newClient(t *testing.T, h nativetest.Handler, opts ...Option) (*Functions, *nativetest.Client) {
	t.Helper()
	p := nativetest.NewProvider(h)
	f, err := New(p, nil, opts...)
	require.NoError(t, err)
	return f, p.Client(apis.DefaultAppName)
}

func TestNew_ResolvesClient(t *testing.T) {
	p := nativetest.NewProvider(nil)

	f, err := New(p, nil)
	require.NoError(t, err)
	assert.Same(t, p.Client(apis.DefaultAppName), f.Native())

	f, err = New(p, app.Default())
	require.NoError(t, err)
	assert.Same(t, p.Client(apis.DefaultAppName), f.Native())

	f, err = New(p, app.FromNative(nativetest.App{AppName: "secondary", Project: "demo"}))
	require.NoError(t, err)
	assert.Same(t, p.Client("secondary"), f.Native())
	assert.Equal(t, "secondary", f.App().Name())
	assert.Equal(t, "demo", f.App().ProjectID())

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestApp_CachedAcrossConcurrentReads(t *testing.T) {
	f, _ := newClient(t, nil)

	const n = 32
	got := make([]*app.App, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = f.App()
		}(i)
	}
	wg.Wait()
	for _, a := range got {
		assert.Same(t, got[0], a)
	}
	assert.Same(t, got[0], f.App())
	assert.Equal(t, apis.DefaultAppName, f.App().Name())
}

func TestHTTPSCallable_InvalidName(t *testing.T) {
	f, c := newClient(t, nil)
	for _, fn := range []string{"", "  ", "1fn", "a--b", "billing.charge", "my-func.v1/x"} {
		_, err := f.HTTPSCallable(fn)
		require.Error(t, err)
		assert.Equal(t, code.InvalidArgument, callable.CodeOf(err), fn)
	}
	assert.Empty(t, c.Calls())
}

func TestHTTPSCallable_NameReachesNativeVerbatim(t *testing.T) {
	f, c := newClient(t, nil)
	for _, fn := range []string{"addMessage", "billing-charge", "admin-users-v2_delete"} {
		cl, err := f.HTTPSCallable(fn)
		require.NoError(t, err)
		assert.Equal(t, fn, string(cl.Name()))
		_, err = cl.Call(context.Background(), nil)
		require.NoError(t, err)
	}

	calls := c.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "addMessage", calls[0].Function)
	assert.Equal(t, "billing-charge", calls[1].Function)
	assert.Equal(t, "admin-users-v2_delete", calls[2].Function)
}

func TestInvoke_PayloadRoutesThroughObjectEntryPoint(t *testing.T) {
	f, c := newClient(t, nil)
	add, err := f.HTTPSCallable("add")
	require.NoError(t, err)

	data := map[string]any{"a": 1, "b": 2}
	_, err = add.Call(context.Background(), data)
	require.NoError(t, err)

	want, err := serde.Serialize(data)
	require.NoError(t, err)

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "add", calls[0].Function)
	assert.True(t, calls[0].WithObject)
	assert.True(t, proto.Equal(want, calls[0].Payload))
}

func TestInvoke_NilRoutesThroughPlainEntryPoint(t *testing.T) {
	f, c := newClient(t, nil)
	ping, err := f.HTTPSCallable("ping")
	require.NoError(t, err)

	v, err := ping.Func()(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].WithObject)
	assert.Nil(t, calls[0].Payload)
}

func TestInvoke_ResolvesWithDeserializedResult(t *testing.T) {
	result, err := serde.Serialize(map[string]any{"sum": int64(3), "ok": true})
	require.NoError(t, err)
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		return result, nil
	})

	add, err := f.HTTPSCallable("add")
	require.NoError(t, err)
	v, err := add.Call(context.Background(), map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"sum": int64(3), "ok": true}, v)
}

func TestInvoke_EchoRoundTrip(t *testing.T) {
	f, _ := newClient(t, nil)
	echo, err := f.HTTPSCallable("echo")
	require.NoError(t, err)

	in := map[string]any{
		"s":    "x",
		"f":    1.5,
		"i":    int64(-7),
		"u":    uint64(1 << 63),
		"list": []any{true, nil, "y"},
	}
	v, err := echo.Call(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, v)
}

func TestInvoke_NativeFailure(t *testing.T) {
	details := map[string]any{"field": "name"}
	nerr := nativetest.NewError(5, "No function named \"lookup\".").WithDetails(details)
	f, _ := newClient(t, nativetest.Fail(nerr))

	lookup, err := f.HTTPSCallable("lookup")
	require.NoError(t, err)
	_, err = lookup.Call(context.Background(), "x")
	require.Error(t, err)

	ce, ok := callable.As(err)
	require.True(t, ok)
	assert.Equal(t, code.NotFound, ce.Code)
	assert.Equal(t, "No function named \"lookup\".", ce.Message)
	assert.Equal(t, details, ce.Details)
	assert.Same(t, nerr, ce.Native)
}

func TestInvoke_ForeignDomainHasNoDetails(t *testing.T) {
	nerr := nativetest.NewError(14, "offline").WithDetails("d").WithDomain("NSURLErrorDomain")
	f, _ := newClient(t, nativetest.Fail(nerr))

	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)
	_, err = fn.Call(context.Background(), nil)
	ce, ok := callable.As(err)
	require.True(t, ok)
	assert.Equal(t, code.Unavailable, ce.Code)
	assert.Nil(t, ce.Details)
}

func TestInvoke_UnknownNativeCode(t *testing.T) {
	f, _ := newClient(t, nativetest.Fail(nativetest.NewError(42, "?")))
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)
	_, err = fn.Call(context.Background(), nil)
	assert.Equal(t, code.Unknown, callable.CodeOf(err))
}

func TestInvoke_UnencodablePayload(t *testing.T) {
	f, c := newClient(t, nil)
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)

	_, err = fn.Call(context.Background(), map[string]any{"ch": make(chan int)})
	ce, ok := callable.As(err)
	require.True(t, ok)
	assert.Equal(t, code.InvalidArgument, ce.Code)
	assert.ErrorIs(t, err, serde.ErrUnsupported)
	assert.Empty(t, c.Calls())
}

func TestInvoke_NonFinitePayloadNeverReachesNative(t *testing.T) {
	f, c := newClient(t, nil)
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)

	for _, data := range []any{math.NaN(), map[string]any{"x": math.Inf(-1)}} {
		_, err = fn.Call(context.Background(), data)
		assert.Equal(t, code.InvalidArgument, callable.CodeOf(err))
		assert.ErrorIs(t, err, serde.ErrUnsupported)
	}
	assert.Empty(t, c.Calls())
}

func TestInvoke_MalformedResult(t *testing.T) {
	bad := structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"@type": structpb.NewStringValue(serde.Int64TypeURL),
		"value": structpb.NewStringValue("not a number"),
	}})
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		return bad, nil
	})
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)

	_, err = fn.Call(context.Background(), nil)
	assert.Equal(t, code.Internal, callable.CodeOf(err))
	assert.ErrorIs(t, err, serde.ErrMalformed)
}

func TestTimeout_AppliedBeforeInvocation(t *testing.T) {
	f, c := newClient(t, nil)
	fn, err := f.HTTPSCallable("slow", WithTimeout(5000*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, fn.Timeout())
	assert.Empty(t, c.Calls())

	_, err = fn.Call(context.Background(), nil)
	require.NoError(t, err)
	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5*time.Second, calls[0].Timeout)
}

func TestTimeout_Policy(t *testing.T) {
	pol := policy.MustNew(
		policy.WithDefaultTimeout(70*time.Second),
		policy.WithTimeoutPrefix("billing", 30*time.Second),
	)
	f, _ := newClient(t, nil, WithPolicy(pol))

	charge, err := f.HTTPSCallable("billing-charge")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, charge.Timeout())

	other, err := f.HTTPSCallable("other")
	require.NoError(t, err)
	assert.Equal(t, 70*time.Second, other.Timeout())

	explicit, err := f.HTTPSCallable("billing-charge", WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, time.Second, explicit.Timeout())

	ignored, err := f.HTTPSCallable("billing-charge", WithTimeout(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ignored.Timeout())
}

func TestTimeout_UnsetWithoutOptionOrPolicy(t *testing.T) {
	f, _ := newClient(t, nil)
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)
	assert.Zero(t, fn.Timeout())
}

func TestUseEmulator(t *testing.T) {
	logger, hook := test.NewNullLogger()
	f, c := newClient(t, nil, WithLogger(logrus.NewEntry(logger)))

	f.UseEmulator("localhost", 5001)
	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)
	_, err = fn.Call(context.Background(), "x")
	require.NoError(t, err)

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "localhost", calls[0].EmulatorHost)
	assert.Equal(t, 5001, calls[0].EmulatorPort)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "localhost", hook.LastEntry().Data["host"])
}

func TestUseFunctionsEmulatorOrigin(t *testing.T) {
	f, c := newClient(t, nil)
	f.UseFunctionsEmulatorOrigin("http://127.0.0.1:5001")

	fn, err := f.HTTPSCallable("fn")
	require.NoError(t, err)
	_, err = fn.Call(context.Background(), nil)
	require.NoError(t, err)

	_, _, origin := c.Emulator()
	assert.Equal(t, "http://127.0.0.1:5001", origin)
	assert.Equal(t, "http://127.0.0.1:5001", c.Calls()[0].EmulatorOrigin)
}

func TestInvoke_ConcurrentCallsAreIndependent(t *testing.T) {
	f, c := newClient(t, nil)
	echo, err := f.HTTPSCallable("echo")
	require.NoError(t, err)

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := echo.Call(context.Background(), int64(i))
			if err != nil {
				errs <- err
				return
			}
			if v != int64(i) {
				errs <- callable.E(code.Internal, "mismatched result")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Len(t, c.Calls(), n)
}

func TestWait_ContextEndsFirst(t *testing.T) {
	release := make(chan struct{})
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		<-release
		return structpb.NewStringValue("late"), nil
	})
	fn, err := f.HTTPSCallable("slow")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	task := fn.Invoke(context.Background(), nil)

	_, err = task.Wait(ctx)
	assert.Equal(t, code.DeadlineExceeded, callable.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cctx, ccancel := context.WithCancel(context.Background())
	ccancel()
	_, err = task.Wait(cctx)
	assert.Equal(t, code.Cancelled, callable.CodeOf(err))

	close(release)
	<-task.Done()
	v, err := task.Result()
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}

func TestTask_SettlesOnce(t *testing.T) {
	task := newTask()
	_, err := task.Result()
	assert.Equal(t, code.FailedPrecondition, callable.CodeOf(err))

	task.resolve("first", nil)
	task.resolve("second", callable.E(code.Internal, "x"))
	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestCallWithRetry_RetriesTransientCodes(t *testing.T) {
	var attempts atomic.Int32
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		if attempts.Add(1) < 3 {
			return nil, nativetest.NewError(14, "unavailable")
		}
		return structpb.NewStringValue("done"), nil
	})
	fn, err := f.HTTPSCallable("flaky")
	require.NoError(t, err)

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 5)
	v, err := fn.CallWithRetry(context.Background(), nil, b)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestCallWithRetry_StopsOnPermanentCodes(t *testing.T) {
	var attempts atomic.Int32
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		attempts.Add(1)
		return nil, nativetest.NewError(7, "denied")
	})
	fn, err := f.HTTPSCallable("guarded")
	require.NoError(t, err)

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 5)
	_, err = fn.CallWithRetry(context.Background(), nil, b)
	assert.Equal(t, code.PermissionDenied, callable.CodeOf(err))
	assert.EqualValues(t, 1, attempts.Load())
}

func TestCallWithRetry_GivesUp(t *testing.T) {
	var attempts atomic.Int32
	f, _ := newClient(t, func(context.Context, nativetest.Call) (*structpb.Value, apis.NativeError) {
		attempts.Add(1)
		return nil, nativetest.NewError(4, "too slow")
	})
	fn, err := f.HTTPSCallable("slow")
	require.NoError(t, err)

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 2)
	_, err = fn.CallWithRetry(context.Background(), nil, b)
	assert.Equal(t, code.DeadlineExceeded, callable.CodeOf(err))
	assert.EqualValues(t, 3, attempts.Load())
}
