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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/trovia/trovia/core"
)

// Persisted values are JSON because external surfaces write the same keys.
// Decoders never fail: unparseable or missing data degrades to the empty
// default for the key, per the directory's recovery rules.

// Encode serializes a value for storage.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// DecodeStrings deserializes a string list, degrading to nil.
func DecodeStrings(data []byte) []string {
	var out []string
	if len(data) == 0 || json.Unmarshal(data, &out) != nil {
		return nil
	}
	return out
}

// DecodeProviders deserializes a provider list, degrading to nil.
func DecodeProviders(data []byte) []core.Provider {
	var out []core.Provider
	if len(data) == 0 || json.Unmarshal(data, &out) != nil {
		return nil
	}
	return out
}

// DecodeOverrides deserializes the override map, degrading to empty.
func DecodeOverrides(data []byte) map[string]core.Override {
	out := make(map[string]core.Override)
	if len(data) == 0 {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return make(map[string]core.Override)
	}
	return out
}

// DecodeProfile deserializes a profile, degrading to the zero Profile.
func DecodeProfile(data []byte) core.Profile {
	var out core.Profile
	if len(data) == 0 || json.Unmarshal(data, &out) != nil {
		return core.Profile{}
	}
	return out
}
