package badger

import (
	"context"
	"time"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/storage"
	"github.com/dgraph-io/badger/v4"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
type ContentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(backend *Backend) (*ContentRepository, error) {
	idSeq, err := backend.GetSequence(contentRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &ContentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ContentRepository) Close() error {
	return r.idSeq.Release()
}

// CreateContent adds a new content record to storage and repoints the
// per-attachment latest-record index at it.
func (r *ContentRepository) CreateContent(ctx context.Context, record *core.ContentRecord) (*core.ContentRecord, error) {
	if err := core.ValidateContentRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		record.Id = core.ID(nextID)

		record.InsertedAt = time.Now().UTC()
		record.UpdatedAt = record.InsertedAt

		// Store primary record
		key := makeContentRecordKey(record.Id)
		value := storage.MarshalContentRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Repoint the latest-record index. The old value, if any, is
		// intentionally superseded; there is at most one live record per
		// attachment.
		latestKey := makeContentLatestKey(record.AttachmentId)
		if err := tx.Set(latestKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateContent updates an existing content record in place.
func (r *ContentRepository) UpdateContent(ctx context.Context, record *core.ContentRecord) (*core.ContentRecord, error) {
	if err := core.ValidateContentRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeContentRecordKey(record.Id)

		old, err := r.readContentRecord(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		record.InsertedAt = old.InsertedAt
		record.UpdatedAt = time.Now().UTC()

		value := storage.MarshalContentRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetContent retrieves a single content record by ID.
func (r *ContentRepository) GetContent(ctx context.Context, id core.ID) (*core.ContentRecord, error) {
	var result *core.ContentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readContentRecord(tx, makeContentRecordKey(id))
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

// FindLatestByAttachment retrieves the most recently created content record
// for an attachment via the latest-record index.
func (r *ContentRepository) FindLatestByAttachment(ctx context.Context, attachmentID core.ID) (*core.ContentRecord, error) {
	var result *core.ContentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeContentLatestKey(attachmentID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var recordID core.ID
		if err := item.Value(func(val []byte) error {
			var unmarshalErr error
			recordID, unmarshalErr = storage.UnmarshalID(val)
			return unmarshalErr
		}); err != nil {
			return err
		}

		result, err = r.readContentRecord(tx, makeContentRecordKey(recordID))
		if err != nil {
			return err
		}
		if result == nil {
			// Dangling index entry; treat as absent.
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListLatestByStatus scans the latest-record index and returns every live
// record carrying the given status.
func (r *ContentRepository) ListLatestByStatus(ctx context.Context, status core.ProcessingStatus) ([]*core.ContentRecord, error) {
	if err := core.ValidateProcessingStatus(status); err != nil {
		return nil, err
	}

	var records []*core.ContentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(contentLatestPrefix + ":")
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var recordID core.ID
			if err := it.Item().Value(func(val []byte) error {
				var unmarshalErr error
				recordID, unmarshalErr = storage.UnmarshalID(val)
				return unmarshalErr
			}); err != nil {
				return err
			}

			record, err := r.readContentRecord(tx, makeContentRecordKey(recordID))
			if err != nil {
				return err
			}
			if record == nil {
				// Dangling index entry; skip.
				continue
			}
			if record.Status == status {
				records = append(records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *ContentRepository) readContentRecord(tx *badger.Txn, key []byte) (*core.ContentRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ContentRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalContentRecord(val)
		return unmarshalErr
	})
	return record, err
}
