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


// Package ingest provides bulk import of vendor submissions.
//
// The Pipeline type validates and normalizes submitted provider records
// before writing them through the vendor repository: records get the
// vendor origin tag and, when they arrive without an ID, a deterministic
// content-based one. Validation runs concurrently over a worker pool;
// rejected records are reported per record and do not fail the batch.
package ingest
