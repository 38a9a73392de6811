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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProvider indicates a Provider failed validation.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("provider name cannot be empty")

	// ErrEmptyCategory indicates the Category field is empty.
	ErrEmptyCategory = errors.New("provider category cannot be empty")

	// ErrRatingRange indicates a rating outside the [0,5] range.
	ErrRatingRange = errors.New("rating must be between 0 and 5")

	// ErrInvalidSource indicates an unknown origin source tag.
	ErrInvalidSource = errors.New("invalid source tag")
)
