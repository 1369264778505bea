package badger

import (
	"context"
	"time"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/storage"
	"github.com/dgraph-io/badger/v4"
)

// AttachmentRepository implements storage.AttachmentRepository for BadgerDB.
type AttachmentRepository struct {
	backend *Backend
}

var _ storage.AttachmentRepository = (*AttachmentRepository)(nil)

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository(backend *Backend) (*AttachmentRepository, error) {
	return &AttachmentRepository{backend: backend}, nil
}

// Close is a no-op; attachments hold no sequence.
func (r *AttachmentRepository) Close() error {
	return nil
}

// AddAttachment registers an attachment. The ID is the BLAKE2b hash of the
// file URL, so re-adding the same file overwrites the existing entry.
func (r *AttachmentRepository) AddAttachment(ctx context.Context, attachment *core.Attachment) (*core.Attachment, error) {
	if err := core.ValidateAttachment(attachment); err != nil {
		return nil, err
	}

	attachment.Id = core.IDFromContent(attachment.FileURL)
	if attachment.InsertedAt.IsZero() {
		attachment.InsertedAt = time.Now().UTC()
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAttachmentKey(attachment.Id)
		value := storage.MarshalAttachment(attachment)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

// GetAttachment retrieves a single attachment by ID.
func (r *AttachmentRepository) GetAttachment(ctx context.Context, id core.ID) (*core.Attachment, error) {
	var result *core.Attachment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readAttachment(tx, makeAttachmentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

func (r *AttachmentRepository) readAttachment(tx *badger.Txn, key []byte) (*core.Attachment, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var attachment *core.Attachment
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		attachment, unmarshalErr = storage.UnmarshalAttachment(val)
		return unmarshalErr
	})
	return attachment, err
}
