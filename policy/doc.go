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

// Package policy resolves per-function call settings, currently the
// invocation timeout, from configuration rules.
//
// Rules are keyed by function name. Resolution order:
//
//  1. exact name rule;
//  2. longest dash-segment prefix rule ("billing" covers "billing-charge",
//     "admin-*-delete" covers "admin-users-delete");
//  3. default timeout, when one is configured;
//  4. nothing, in which case the native default applies.
//
// A Policy is immutable and safe for concurrent use once built.
package policy
