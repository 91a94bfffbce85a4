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
	"io"
	"net/http"

	"dirpx.dev/callable"
	"dirpx.dev/callable/adapter"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/mapper"
	"dirpx.dev/callable/serde"
	"github.com/tidwall/gjson"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxRequestBytes bounds how much of a request body Handler reads.
const maxRequestBytes = 10 << 20

// internalBody is written when an envelope itself cannot be encoded.
const internalBody = `{"error":{"status":"INTERNAL","message":"INTERNAL"}}`

// Writer writes callable response envelopes. The HTTP status of an error is
// resolved through Mapper.
type Writer struct {
	Mapper apis.Mapper
}

func (w Writer) mapper() apis.Mapper {
	if w.Mapper == nil {
		return mapper.Default()
	}
	return w.Mapper
}

// WriteResult writes {"result": v} with status 200. A value that cannot be
// encoded is reported as an internal error instead.
func (w Writer) WriteResult(rw http.ResponseWriter, v any) {
	wire, err := serde.Serialize(v)
	if err != nil {
		w.WriteError(rw, callable.E(code.Internal, "INTERNAL", callable.WithCauseOption(err)))
		return
	}
	w.write(rw, http.StatusOK, map[string]*structpb.Value{"result": wire})
}

// WriteError writes {"error": {"status", "message", "details"}}.
//
// Errors without a *callable.Error in their chain are written as internal
// with a generic message, so their text never reaches the caller.
func (w Writer) WriteError(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	ce, ok := callable.As(err)
	if !ok {
		ce = callable.E(code.Internal, "INTERNAL")
	}

	view := adapter.ToView(ce)
	env := map[string]*structpb.Value{
		"status":  structpb.NewStringValue(ce.Code.Status()),
		"message": structpb.NewStringValue(view.Message),
	}
	if view.Details != nil {
		if d, derr := serde.Serialize(view.Details); derr == nil {
			env["details"] = d
		}
	}

	w.write(rw, w.mapper().HTTPStatus(ce.Code), map[string]*structpb.Value{
		"error": structpb.NewStructValue(&structpb.Struct{Fields: env}),
	})
}

func (w Writer) write(rw http.ResponseWriter, status int, fields map[string]*structpb.Value) {
	// protojson keeps the 64-bit wrapper objects and nested values intact.
	body, err := protojson.Marshal(&structpb.Struct{Fields: fields})
	if err != nil {
		status, body = http.StatusInternalServerError, []byte(internalBody)
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(body)
}

// Func is a callable function body.
type Func func(ctx context.Context, data any) (any, error)

// Handler serves fn over the callable protocol. Requests must be POSTs
// carrying a JSON object with a "data" field.
func Handler(fn Func, w Writer) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		bad := callable.E(code.InvalidArgument, "Bad Request")
		if r.Method != http.MethodPost {
			w.WriteError(rw, bad.WithMessage("Request has invalid method. "+r.Method))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil || !gjson.ValidBytes(body) {
			w.WriteError(rw, bad)
			return
		}
		raw := gjson.GetBytes(body, "data")
		if !raw.Exists() {
			w.WriteError(rw, bad.WithMessage("Request body is missing data."))
			return
		}

		var wire structpb.Value
		if err := protojson.Unmarshal([]byte(raw.Raw), &wire); err != nil {
			w.WriteError(rw, bad)
			return
		}
		data, err := serde.Deserialize(&wire)
		if err != nil {
			w.WriteError(rw, bad.WithCause(err))
			return
		}

		res, err := fn(r.Context(), data)
		if err != nil {
			w.WriteError(rw, err)
			return
		}
		w.WriteResult(rw, res)
	})
}
