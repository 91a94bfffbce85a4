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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// Client is the HTTP native client of one application.
type Client struct {
	app  nativeApp
	opts Options
	log  *logrus.Entry

	mu     sync.RWMutex
	origin string
}

var _ apis.NativeClient = (*Client)(nil)

func newClient(a nativeApp, opts Options) *Client {
	return &Client{
		app:  a,
		opts: opts,
		log:  opts.Logger.WithField("app", a.name),
	}
}

// HTTPSCallable returns a callable for fn with the default timeout.
func (c *Client) HTTPSCallable(fn string) apis.NativeCallable {
	cl := &nativeCallable{client: c, name: fn}
	cl.timeout.Store(int64(c.opts.DefaultTimeout))
	return cl
}

// UseEmulator points the client at http://host:port.
func (c *Client) UseEmulator(host string, port int) {
	c.UseEmulatorOrigin("http://" + net.JoinHostPort(host, strconv.Itoa(port)))
}

// UseEmulatorOrigin points the client at origin, e.g. "http://localhost:5001".
func (c *Client) UseEmulatorOrigin(origin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = strings.TrimSuffix(origin, "/")
}

// App returns the application the client is bound to.
func (c *Client) App() apis.NativeApp { return c.app }

// URL returns the endpoint of fn.
func (c *Client) URL(fn string) string {
	c.mu.RLock()
	origin := c.origin
	c.mu.RUnlock()
	if origin != "" {
		return fmt.Sprintf("%s/%s/%s/%s", origin, c.app.project, c.opts.Region, fn)
	}
	return fmt.Sprintf("https://%s-%s.cloudfunctions.net/%s", c.opts.Region, c.app.project, fn)
}

// invoke performs one request. payload nil sends {"data": null}.
func (c *Client) invoke(ctx context.Context, fn string, payload *structpb.Value, timeout time.Duration) (*structpb.Value, *Error) {
	start := time.Now()
	v, err := c.do(ctx, fn, payload, timeout)

	outcome := code.OK
	if err != nil {
		outcome = err.code
	}
	c.opts.Metrics.observe(fn, outcome, time.Since(start))
	return v, err
}

func (c *Client) do(ctx context.Context, fn string, payload *structpb.Value, timeout time.Duration) (*structpb.Value, *Error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if payload == nil {
		payload = structpb.NewNullValue()
	}
	body, err := protojson.Marshal(&structpb.Struct{Fields: map[string]*structpb.Value{"data": payload}})
	if err != nil {
		return nil, newError(code.Internal, "Request cannot be encoded.", nil, err)
	}

	url := c.URL(fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newError(code.Internal, err.Error(), nil, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.opts.TokenSource != nil {
		token, err := c.opts.TokenSource(ctx)
		if err != nil {
			return nil, newError(code.Unauthenticated, "Token cannot be obtained.", nil, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	c.log.WithFields(logrus.Fields{
		"url":    url,
		"status": resp.StatusCode,
	}).Debug("httpx: response received")

	return decodeResponse(resp.StatusCode, raw, c.opts.Mapper)
}

// decodeResponse interprets a callable response.
//
// An error envelope wins over the HTTP status. Without one, a non-200
// status is classified by the mapper. A 200 must carry "result"; the
// legacy "data" field is accepted too.
func decodeResponse(status int, body []byte, m apis.Mapper) (*structpb.Value, *Error) {
	var root gjson.Result
	isObject := gjson.ValidBytes(body)
	if isObject {
		root = gjson.ParseBytes(body)
		isObject = root.IsObject()
	}

	if isObject {
		if env := root.Get("error"); env.Exists() {
			if e := errorFromEnvelope(env, m.CodeForHTTP(status)); e != nil {
				return nil, e
			}
		}
	}

	if status != http.StatusOK {
		c := m.CodeForHTTP(status)
		if c == code.OK {
			c = code.Unknown
		}
		return nil, newError(c, string(c), nil, nil)
	}
	if !isObject {
		return nil, newError(code.Internal, "Response is not valid JSON object.", nil, nil)
	}

	res := root.Get("result")
	if !res.Exists() {
		res = root.Get("data")
	}
	if !res.Exists() {
		return nil, newError(code.Internal, "Response is missing data field.", nil, nil)
	}

	var v structpb.Value
	if err := protojson.Unmarshal([]byte(res.Raw), &v); err != nil {
		return nil, newError(code.Internal, "Response is not valid JSON object.", nil, err)
	}
	return &v, nil
}

// errorFromEnvelope builds the error described by an {"error": ...}
// object. It returns nil when the envelope reports ok.
func errorFromEnvelope(env gjson.Result, fallback code.Code) *Error {
	c := fallback
	if st := env.Get("status"); st.Type == gjson.String {
		parsed, err := code.Parse(st.String())
		if err != nil {
			return newError(code.Internal, "internal", nil, nil)
		}
		c = parsed
	}
	if c == code.OK {
		return nil
	}

	msg := string(c)
	if m := env.Get("message"); m.Type == gjson.String {
		msg = m.String()
	}

	var details any
	if d := env.Get("details"); d.Exists() {
		decoded, err := decodeDetails(d.Raw)
		if err != nil {
			return newError(code.Internal, "Error details cannot be decoded.", nil, err)
		}
		details = decoded
	}
	return newError(c, msg, details, nil)
}

// transportError classifies a failed round trip. The request context
// decides between deadline and cancellation.
func transportError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return newError(code.DeadlineExceeded, "deadline-exceeded", nil, err)
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return newError(code.Cancelled, "cancelled", nil, err)
	default:
		return newError(code.Internal, err.Error(), nil, err)
	}
}

// nativeCallable is the apis.NativeCallable of one function.
type nativeCallable struct {
	client  *Client
	name    string
	timeout atomic.Int64
}

func (n *nativeCallable) SetTimeout(d time.Duration) {
	if d > 0 {
		n.timeout.Store(int64(d))
	}
}

func (n *nativeCallable) Timeout() time.Duration {
	return time.Duration(n.timeout.Load())
}

func (n *nativeCallable) Call(ctx context.Context, done apis.Completion) {
	n.start(ctx, nil, done)
}

func (n *nativeCallable) CallWithObject(ctx context.Context, payload *structpb.Value, done apis.Completion) {
	n.start(ctx, payload, done)
}

func (n *nativeCallable) start(ctx context.Context, payload *structpb.Value, done apis.Completion) {
	timeout := n.Timeout()
	go func() {
		v, err := n.client.invoke(ctx, n.name, payload, timeout)
		if err != nil {
			done(nil, err)
			return
		}
		done(&apis.NativeResult{Data: v}, nil)
	}()
}
