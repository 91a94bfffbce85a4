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

// Package httpx speaks the callable-functions HTTP protocol.
//
// The client side is a native layer for package functions: NewProvider
// returns an apis.Provider whose clients POST {"data": ...} to
// https://{region}-{project}.cloudfunctions.net/{name}, or to
// {origin}/{project}/{region}/{name} once an emulator is configured, and
// translate the {"result": ...} or {"error": ...} response.
//
// The server side (Writer, Handler) produces the same envelopes, so a plain
// net/http server can host callables or stand in for the emulator.
package httpx
