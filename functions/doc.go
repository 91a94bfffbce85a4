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

// Package functions is the callable-functions client.
//
// A *Functions owns one native client, resolved once from an apis.Provider
// and an optional application handle. HTTPSCallable hands out invocable
// handles bound to a function name:
//
//	fns, err := functions.New(provider, nil)
//	if err != nil {
//	    return err
//	}
//	add, err := fns.HTTPSCallable("add", functions.WithTimeout(5*time.Second))
//	if err != nil {
//	    return err
//	}
//	sum, err := add.Call(ctx, map[string]any{"a": 1, "b": 2})
//
// Every failure is a *callable.Error. Native failures are translated at the
// completion boundary and are never surfaced raw.
package functions
