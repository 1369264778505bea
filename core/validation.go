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

import (
	"fmt"
)

// ValidateAttachment validates an Attachment according to domain rules.
//
// Validation rules:
//   - FileURL must not be empty
//   - FileName must not be empty
//   - FileType must not be empty
//
// NOT validated:
//   - ID (0 is valid before content hashing assigns one)
func ValidateAttachment(attachment *Attachment) error {
	if attachment == nil {
		return fmt.Errorf("%w: attachment is nil", ErrInvalidAttachment)
	}

	if attachment.FileURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAttachment, ErrEmptyFileURL)
	}

	if attachment.FileName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAttachment, ErrEmptyFileName)
	}

	if attachment.FileType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAttachment, ErrEmptyFileType)
	}

	return nil
}

// ValidateContentRecord validates a ContentRecord according to domain rules.
//
// Validation rules:
//   - AttachmentId must be set
//   - Status must be a valid ProcessingStatus
//   - ErrorMessage may only be set while Status is StatusFailed
//
// NOT validated (populated during processing):
//   - ExtractedText and ContentChunks (empty until completion)
//   - ID (0 is valid from database sequences)
func ValidateContentRecord(record *ContentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidContentRecord)
	}

	if record.AttachmentId == 0 {
		return fmt.Errorf("%w: attachment id is required", ErrInvalidContentRecord)
	}

	if err := ValidateProcessingStatus(record.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContentRecord, err)
	}

	if record.ErrorMessage != "" && record.Status != StatusFailed {
		return fmt.Errorf("%w: %w", ErrInvalidContentRecord, ErrUnexpectedErrorMessage)
	}

	return nil
}

// ValidateProcessingStatus validates that a ProcessingStatus has a valid value.
func ValidateProcessingStatus(status ProcessingStatus) error {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidProcessingStatus, status)
	}
}
