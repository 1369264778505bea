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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidAttachment indicates an Attachment failed validation.
	ErrInvalidAttachment = errors.New("invalid attachment")

	// ErrInvalidContentRecord indicates a ContentRecord failed validation.
	ErrInvalidContentRecord = errors.New("invalid content record")

	// ErrEmptyFileURL indicates the FileURL field is empty.
	ErrEmptyFileURL = errors.New("file URL cannot be empty")

	// ErrEmptyFileName indicates the FileName field is empty.
	ErrEmptyFileName = errors.New("file name cannot be empty")

	// ErrEmptyFileType indicates the FileType field is empty.
	ErrEmptyFileType = errors.New("file type cannot be empty")

	// ErrInvalidProcessingStatus indicates an invalid ProcessingStatus value.
	ErrInvalidProcessingStatus = errors.New("invalid processing status")

	// ErrUnexpectedErrorMessage indicates an error message on a non-failed record.
	ErrUnexpectedErrorMessage = errors.New("error message is only valid on failed records")
)
