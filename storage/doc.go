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


// Package storage provides the storage abstraction layer for trovia.
//
// This package defines the key-value store and repository interfaces that
// decouple persistence from the directory core. The shared keys listed in
// keys.go are written both by this module and by external surfaces (the
// vendor-submission and moderation tools), so the value shapes are plain
// JSON and every decoder degrades to a safe default instead of failing.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return the interfaces defined here rather
// than concrete types:
//
//	store, err := badger.Open(path)  // returns storage.Stores
//
// This keeps consumers decoupled from BadgerDB specifics, makes backends
// swappable, and lets tests substitute in-memory implementations.
//
// # Change Notifications
//
// KV.Subscribe registers an observer for key changes. Subscriptions are
// scoped to a context and torn down when it is cancelled; there is no
// ambient global event.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. The directory
// session itself recomputes synchronously, but external surfaces may
// write shared keys at any time.
package storage
