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

// Package grpcx bridges *callable.Error and gRPC statuses, so callable
// failures can cross a gRPC boundary without losing code, message or
// details.
package grpcx

import (
	"context"
	"errors"

	"dirpx.dev/callable"
	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/code"
	"dirpx.dev/callable/mapper"
	"dirpx.dev/callable/serde"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStatus converts e into a gRPC status. The status code is resolved via
// m (mapper.Default() when nil). Details are attached as a
// google.protobuf.Value; details that cannot be encoded are dropped.
func ToStatus(m apis.Mapper, e *callable.Error) *gstatus.Status {
	if e == nil {
		return nil
	}
	if m == nil {
		m = mapper.Default()
	}

	base := gstatus.New(m.GRPCStatus(e.Code), e.Message)
	if e.Details == nil {
		return base
	}

	// Try to attach details. If it fails, return base.
	if d, err := serde.Serialize(e.Details); err == nil {
		if with, err := base.WithDetails(d); err == nil {
			return with
		}
	}
	return base
}

// FromError converts a gRPC error into a *callable.Error.
//
// A *callable.Error already in err's chain is returned as-is. Context
// errors become cancelled or deadline_exceeded. Errors that carry no gRPC
// status become unknown with err attached as cause.
func FromError(err error) *callable.Error {
	if err == nil {
		return nil
	}
	if ce, ok := callable.As(err); ok {
		return ce
	}

	st, ok := gstatus.FromError(err)
	if !ok {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			st = gstatus.FromContextError(err)
		} else {
			return callable.E(code.Unknown, err.Error(), callable.WithCauseOption(err))
		}
	}

	ce := callable.E(code.FromGRPC(st.Code()), st.Message(), callable.WithNativeOption(st))
	if d, ok := ExtractDetails(st); ok {
		ce = ce.WithDetails(d)
	}
	return ce
}

// ExtractDetails returns the decoded details attached by ToStatus, if
// present.
func ExtractDetails(st *gstatus.Status) (any, bool) {
	if st == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		v, ok := d.(*structpb.Value)
		if !ok {
			continue
		}
		decoded, err := serde.Deserialize(v)
		if err != nil {
			return nil, false
		}
		return decoded, true
	}
	return nil, false
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that
// converts *callable.Error results into gRPC statuses via m.
// Other errors are returned unchanged.
func UnaryServerInterceptor(m apis.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		ce, ok := callable.As(err)
		if !ok {
			return nil, err
		}
		return nil, ToStatus(m, ce).Err()
	}
}

// UnaryClientInterceptor returns a gRPC UnaryClientInterceptor that turns
// every failed call into a *callable.Error.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
			return FromError(err)
		}
		return nil
	}
}
