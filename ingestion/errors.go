package ingestion

import "errors"

var (
	// ErrAttachmentRepositoryRequired is returned when an attachment repository is not provided.
	ErrAttachmentRepositoryRequired = errors.New("attachment repository required")

	// ErrContentRepositoryRequired is returned when a content repository is not provided.
	ErrContentRepositoryRequired = errors.New("content repository required")

	// ErrAnalyzerRequired is returned when an image analyzer is not provided.
	ErrAnalyzerRequired = errors.New("image analyzer required")

	// ErrAttachmentNotFound is returned when the attachment to process does
	// not exist. No content record is written in that case.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrDownloadFailed is returned when the attachment bytes could not be
	// fetched from the file URL.
	ErrDownloadFailed = errors.New("attachment download failed")

	// ErrPersistenceFailed is returned when the completed record could not be
	// written. The content itself was computed and is recomputed on retry.
	ErrPersistenceFailed = errors.New("content persistence failed")
)
