// Copyright 2025 Atlasdesk Labs
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


// Package storage provides the storage abstraction layer for docproc.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion pipeline. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - AttachmentRepository: read/register access to uploaded file references
//   - ContentRepository: content records and their processing lifecycle
//
// The ContentRepository carries the core invariant of the pipeline: at most
// one live content record per attachment. FindLatestByAttachment is the
// look-up half of the look-up-then-write idempotency check performed by the
// ingestion orchestrator; CreateContent repoints the per-attachment index so
// the latest record is always a single key read away.
//
// # Usage
//
// Create repositories over a shared backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	contentRepo, err := badger.NewContentRepository(backend)
//	defer contentRepo.Close()
//
// Use in tests with in-memory storage:
//
//	attachRepo, contentRepo, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Note that look-up-then-write sequences
// performed by callers are not mutually exclusive across processes; see the
// ingestion package documentation.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
