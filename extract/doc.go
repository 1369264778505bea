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

// Package extract turns raw attachment bytes into text and image references.
//
// A Registry maps declared media types to extractors using case-insensitive
// substring matching, mirroring how upstream systems report loose types such
// as "application/vnd.openxmlformats-officedocument.wordprocessingml.document".
// Unknown types resolve to ErrUnsupportedMediaType so callers can mark the
// attachment as permanently unprocessable rather than retrying.
package extract
