package reprocess

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/ingestion"
	"github.com/atlasdesk/docproc/storage"
	"github.com/atlasdesk/docproc/storage/badger"
)

// fakeIngestor succeeds for every attachment except those listed in failFor.
type fakeIngestor struct {
	failFor map[core.ID]bool
	calls   map[core.ID]int
}

func newFakeIngestor() *fakeIngestor {
	return &fakeIngestor{
		failFor: make(map[core.ID]bool),
		calls:   make(map[core.ID]int),
	}
}

func (f *fakeIngestor) Ingest(ctx context.Context, attachmentID core.ID, opts *ingestion.IngestOptions) (*ingestion.Result, error) {
	f.calls[attachmentID]++
	if f.failFor[attachmentID] {
		return nil, errors.New("still broken")
	}
	return &ingestion.Result{Status: core.StatusCompleted}, nil
}

func setupContents(t *testing.T) storage.ContentRepository {
	t.Helper()
	_, contents, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return contents
}

func addFailedRecord(t *testing.T, contents storage.ContentRepository, attachmentID core.ID) {
	t.Helper()
	_, err := contents.CreateContent(context.Background(), &core.ContentRecord{
		AttachmentId: attachmentID,
		Status:       core.StatusFailed,
		ErrorMessage: "download failed",
	})
	require.NoError(t, err)
}

func quickConfig() *Config {
	return &Config{
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewReprocessor_Validation(t *testing.T) {
	contents := setupContents(t)

	_, err := NewReprocessor(nil, newFakeIngestor(), nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrContentRepositoryRequired)

	_, err = NewReprocessor(contents, nil, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrIngestorRequired)
}

func TestRun_NothingToDo(t *testing.T) {
	contents := setupContents(t)

	var buf bytes.Buffer
	r, err := NewReprocessor(contents, newFakeIngestor(), quickConfig(), &buf)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Contains(t, buf.String(), "No failed attachments")
}

func TestRun_RetriesFailedAttachments(t *testing.T) {
	contents := setupContents(t)
	addFailedRecord(t, contents, 11)
	addFailedRecord(t, contents, 12)

	ingestor := newFakeIngestor()

	var buf bytes.Buffer
	r, err := NewReprocessor(contents, ingestor, quickConfig(), &buf)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, 1, ingestor.calls[11])
	assert.Equal(t, 1, ingestor.calls[12])
}

func TestRun_CountsPersistentFailures(t *testing.T) {
	contents := setupContents(t)
	addFailedRecord(t, contents, 21)
	addFailedRecord(t, contents, 22)

	ingestor := newFakeIngestor()
	ingestor.failFor[22] = true

	var buf bytes.Buffer
	r, err := NewReprocessor(contents, ingestor, quickConfig(), &buf)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	// The stubborn attachment was retried up to MaxRetries.
	assert.Equal(t, quickConfig().MaxRetries, ingestor.calls[22])
	assert.Contains(t, buf.String(), "still failing")
}

func TestRun_SkipsCompletedRecords(t *testing.T) {
	contents := setupContents(t)
	addFailedRecord(t, contents, 31)

	_, err := contents.CreateContent(context.Background(), &core.ContentRecord{
		AttachmentId: 32,
		Status:       core.StatusCompleted,
	})
	require.NoError(t, err)

	ingestor := newFakeIngestor()

	r, err := NewReprocessor(contents, ingestor, quickConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Zero(t, ingestor.calls[32])
}

func TestRun_CancelledContext(t *testing.T) {
	contents := setupContents(t)
	addFailedRecord(t, contents, 41)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewReprocessor(contents, newFakeIngestor(), quickConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
