// Copyright 2025 Atarsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search implements the multi-strategy record ranking engine.
//
// It combines several matching strategies over plain in-memory collections:
//   - Exact and prefix matching against caller-chosen keys
//   - Word-containment scoring with per-word tiers (courses)
//   - Additive alias and prefix scoring (subjects)
//   - Approximate matching with a weighted-key fuzzy index and a
//     size-keyed, TTL-expired index cache
//
// The package is a pure ranking utility: it performs no I/O, raises no
// errors, and coerces malformed options instead of rejecting them. Input
// validation and result delivery belong to callers.
package search
