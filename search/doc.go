// Copyright 2025 Trovia Authors
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


// Package search implements the directory's filtering and ranking
// pipeline.
//
// The pipeline runs in fixed stages over the overlay-resolved provider
// list:
//   - Filter: a stable, order-preserving conjunction of the active
//     filter predicates (favorites, verification, category, location,
//     availability, free-text query)
//   - Rank: a composite relevance score blending location match,
//     normalized rating, and availability, followed by an optional
//     explicit sort-mode override
//
// Both stages are pure: the same inputs always produce the same output
// list, and inputs are never mutated. Recomputation is therefore safe on
// every state change.
package search
