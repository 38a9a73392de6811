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


package core

import "fmt"

// ValidateProvider validates a Provider according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Category must not be empty
//   - Rating must be within [0,5]
//   - Source, when set, must be a known tag
//
// NOT validated (degraded at read time instead):
//   - Status (unknown values rank in the lowest availability bucket)
//   - ID (assigned during ingest when missing)
//
// Validation runs at the write boundary (ingest); the read path never
// rejects a persisted record.
func ValidateProvider(p *Provider) error {
	if p == nil {
		return fmt.Errorf("%w: provider is nil", ErrInvalidProvider)
	}

	if p.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProvider, ErrEmptyName)
	}

	if p.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProvider, ErrEmptyCategory)
	}

	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: %w (got %v)", ErrInvalidProvider, ErrRatingRange, p.Rating)
	}

	if err := ValidateSource(p.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProvider, err)
	}

	return nil
}

// ValidateSource checks that a source tag is empty or one of the known
// values.
func ValidateSource(s Source) error {
	switch s {
	case "", SourceStatic, SourceVendor:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, s)
	}
}

// ClampRating clamps a rating into the [0,5] range. Used at scoring time
// so malformed persisted ratings degrade instead of erroring.
func ClampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
