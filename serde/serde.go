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

// Package serde converts plain Go values to and from the wire representation
// used by native callable clients.
//
// The wire representation is *structpb.Value. JSON numbers are doubles, so
// 64-bit integers travel as protobuf wrapper objects:
//
//	{"@type": "type.googleapis.com/google.protobuf.Int64Value", "value": "9007199254740993"}
//
// Deserialize recognizes those wrappers and yields int64 / uint64 again.
package serde

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	typeKey  = "@type"
	valueKey = "value"
)

var (
	// Int64TypeURL tags a signed 64-bit integer wrapper.
	Int64TypeURL = typeURL(&wrapperspb.Int64Value{})
	// UInt64TypeURL tags an unsigned 64-bit integer wrapper.
	UInt64TypeURL = typeURL(&wrapperspb.UInt64Value{})
)

var (
	// ErrUnsupported is returned by Serialize for values outside the
	// supported domain (structs, channels, functions, non-string map keys).
	ErrUnsupported = errors.New("serde: unsupported value")
	// ErrMalformed is returned by Deserialize for wrapper objects whose value
	// cannot be decoded.
	ErrMalformed = errors.New("serde: malformed wire value")
)

func typeURL(m proto.Message) string {
	return "type.googleapis.com/" + string(m.ProtoReflect().Descriptor().FullName())
}

// Serialize converts v into its wire representation.
//
// Supported inputs: nil, bool, string, every Go integer and float kind,
// slices/arrays of supported values, maps with string keys, pointers to
// supported values, and *structpb.Value (passed through). Nil slices and
// maps encode as empty lists and objects.
func Serialize(v any) (*structpb.Value, error) {
	switch t := v.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case *structpb.Value:
		if t == nil {
			return structpb.NewNullValue(), nil
		}
		return t, nil
	case bool:
		return structpb.NewBoolValue(t), nil
	case string:
		return structpb.NewStringValue(t), nil
	case float64:
		return number(t)
	case float32:
		return number(float64(t))
	case int64:
		return wrapInt(t), nil
	case uint64:
		return wrapUint(t), nil
	case []any:
		return serializeList(len(t), func(i int) any { return t[i] })
	case map[string]any:
		return serializeMap(t)
	}
	return serializeReflect(reflect.ValueOf(v))
}

func serializeReflect(rv reflect.Value) (*structpb.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return structpb.NewBoolValue(rv.Bool()), nil
	case reflect.String:
		return structpb.NewStringValue(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return wrapInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return wrapUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return number(rv.Float())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return structpb.NewNullValue(), nil
		}
		return Serialize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return serializeList(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupported, rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return serializeMap(m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
	}
}

// number rejects NaN and infinities, which have no JSON encoding.
func number(f float64) (*structpb.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite number %v", ErrUnsupported, f)
	}
	return structpb.NewNumberValue(f), nil
}

func serializeList(n int, at func(int) any) (*structpb.Value, error) {
	vals := make([]*structpb.Value, n)
	for i := 0; i < n; i++ {
		v, err := Serialize(at(i))
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		vals[i] = v
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
}

func serializeMap(m map[string]any) (*structpb.Value, error) {
	fields := make(map[string]*structpb.Value, len(m))
	// Sorted keys keep error messages stable for the same input.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := Serialize(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		fields[k] = v
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
}

func wrapInt(n int64) *structpb.Value {
	return wrapper(Int64TypeURL, strconv.FormatInt(n, 10))
}

func wrapUint(n uint64) *structpb.Value {
	return wrapper(UInt64TypeURL, strconv.FormatUint(n, 10))
}

func wrapper(url, value string) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		typeKey:  structpb.NewStringValue(url),
		valueKey: structpb.NewStringValue(value),
	}})
}

// Deserialize converts a wire value back into plain Go values:
// nil, bool, string, float64, int64, uint64, []any and map[string]any.
//
// A nil input yields nil. Objects tagged with an unknown "@type" are
// returned as plain maps.
func Deserialize(v *structpb.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_BoolValue:
		return k.BoolValue, nil
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NumberValue:
		return k.NumberValue, nil
	case *structpb.Value_ListValue:
		vals := k.ListValue.GetValues()
		out := make([]any, len(vals))
		for i, e := range vals {
			d, err := Deserialize(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = d
		}
		return out, nil
	case *structpb.Value_StructValue:
		return deserializeStruct(k.StructValue)
	default:
		return nil, fmt.Errorf("%w: kind %T", ErrMalformed, k)
	}
}

func deserializeStruct(s *structpb.Struct) (any, error) {
	fields := s.GetFields()
	if t, ok := fields[typeKey]; ok {
		switch t.GetStringValue() {
		case Int64TypeURL:
			n, err := strconv.ParseInt(wrappedValue(fields), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: int64 wrapper: %v", ErrMalformed, err)
			}
			return n, nil
		case UInt64TypeURL:
			n, err := strconv.ParseUint(wrappedValue(fields), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: uint64 wrapper: %v", ErrMalformed, err)
			}
			return n, nil
		}
	}
	out := make(map[string]any, len(fields))
	for k, f := range fields {
		d, err := Deserialize(f)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = d
	}
	return out, nil
}

// wrappedValue tolerates servers that send the wrapper value as a number.
func wrappedValue(fields map[string]*structpb.Value) string {
	v := fields[valueKey]
	if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
		if n.NumberValue == math.Trunc(n.NumberValue) && !math.IsInf(n.NumberValue, 0) {
			return strconv.FormatFloat(n.NumberValue, 'f', -1, 64)
		}
	}
	return v.GetStringValue()
}
