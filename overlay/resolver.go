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


// Package overlay composes effective provider records from the three
// independently-sourced layers: the static catalog, vendor submissions,
// and moderation overrides.
//
// The resolver only annotates. Removed records stay in its output; the
// search pipeline drops them. Keeping annotation and filtering separate
// lets moderation tooling inspect removed records.
package overlay

import "github.com/trovia/trovia/core"

// Resolve applies the override map to a single provider record and
// returns the effective record. The input is never mutated.
//
// A record with no ID, or with no override stored under its
// "source:id" key, fails open: not removed, verification from the
// record's own flags only.
func Resolve(p core.Provider, overrides map[string]core.Override) core.Resolved {
	res := core.Resolved{
		Provider: p,
		Source:   p.Origin(),
		Verified: p.OwnVerified(),
	}

	if p.ID == "" || len(overrides) == 0 {
		return res
	}

	ov, ok := overrides[core.OverrideKey(res.Source, p.ID)]
	if !ok {
		return res
	}

	if ov.Verified != nil {
		res.Verified = *ov.Verified
	}
	if ov.Removed != nil && *ov.Removed {
		res.Removed = true
	}
	return res
}

// ResolveAll annotates the static catalog followed by the vendor
// submissions, preserving input order within each layer.
func ResolveAll(catalog, vendors []core.Provider, overrides map[string]core.Override) []core.Resolved {
	out := make([]core.Resolved, 0, len(catalog)+len(vendors))
	for _, p := range catalog {
		out = append(out, Resolve(p, overrides))
	}
	for _, p := range vendors {
		out = append(out, Resolve(p, overrides))
	}
	return out
}
