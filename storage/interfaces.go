package storage

import (
	"context"

	"github.com/atlasdesk/docproc/core"
)

// AttachmentRepository provides read access to uploaded attachment references.
// Implementations must be thread-safe and support concurrent access.
type AttachmentRepository interface {
	// AddAttachment registers an attachment. The ID is derived from the file
	// URL, so adding the same attachment twice overwrites rather than
	// duplicates. Sets InsertedAt if not already set.
	// Returns the attachment with its ID populated.
	AddAttachment(ctx context.Context, attachment *core.Attachment) (*core.Attachment, error)

	// GetAttachment retrieves a single attachment by ID.
	// Returns ErrNotFound if the attachment doesn't exist.
	GetAttachment(ctx context.Context, id core.ID) (*core.Attachment, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ContentRepository manages content records and their processing lifecycle.
// Implementations must be thread-safe and support concurrent access.
type ContentRepository interface {
	// CreateContent adds a new content record to storage.
	// Generates a new ID from sequence, sets InsertedAt/UpdatedAt, and points
	// the per-attachment latest-record index at the new row.
	// Returns the record with generated ID and timestamps populated.
	CreateContent(ctx context.Context, record *core.ContentRecord) (*core.ContentRecord, error)

	// UpdateContent updates an existing content record in place and refreshes
	// its UpdatedAt timestamp.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateContent(ctx context.Context, record *core.ContentRecord) (*core.ContentRecord, error)

	// GetContent retrieves a single content record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetContent(ctx context.Context, id core.ID) (*core.ContentRecord, error)

	// FindLatestByAttachment retrieves the most recently created content
	// record for an attachment. At most one live record exists per attachment;
	// callers must consult this before creating a new row.
	// Returns ErrNotFound if the attachment has no content record.
	FindLatestByAttachment(ctx context.Context, attachmentID core.ID) (*core.ContentRecord, error)

	// ListLatestByStatus returns the live record of every attachment whose
	// record carries the given status. Order is unspecified.
	ListLatestByStatus(ctx context.Context, status core.ProcessingStatus) ([]*core.ContentRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
