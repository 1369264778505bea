package badger

import (
	"context"
	"testing"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentRepo(t *testing.T) (storage.ContentRepository, storage.AttachmentRepository) {
	t.Helper()

	attachmentRepo, contentRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)

	t.Cleanup(func() {
		contentRepo.Close()
		attachmentRepo.Close()
		backend.Close()
	})

	return contentRepo, attachmentRepo
}

func TestCreateContent(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	record, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 7,
		Status:       core.StatusProcessing,
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.NotZero(t, record.Id)
	assert.False(t, record.InsertedAt.IsZero())
	assert.Equal(t, record.InsertedAt, record.UpdatedAt)

	got, err := repo.GetContent(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record.Id, got.Id)
	assert.Equal(t, core.ID(7), got.AttachmentId)
	assert.Equal(t, core.StatusProcessing, got.Status)
}

func TestCreateContent_Invalid(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	_, err := repo.CreateContent(ctx, &core.ContentRecord{Status: core.StatusProcessing})
	assert.ErrorIs(t, err, core.ErrInvalidContentRecord)
}

func TestGetContent_NotFound(t *testing.T) {
	repo, _ := setupContentRepo(t)

	_, err := repo.GetContent(context.Background(), 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateContent(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	record, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 7,
		Status:       core.StatusProcessing,
	})
	require.NoError(t, err)

	record.Status = core.StatusCompleted
	record.ExtractedText = "Extracted body."
	record.ContentChunks = []string{"Extracted body."}

	updated, err := repo.UpdateContent(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, record.Id, updated.Id)

	got, err := repo.GetContent(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, got.Status)
	assert.Equal(t, "Extracted body.", got.ExtractedText)
	assert.Equal(t, []string{"Extracted body."}, got.ContentChunks)
	assert.False(t, got.UpdatedAt.Before(got.InsertedAt))
}

func TestUpdateContent_NotFound(t *testing.T) {
	repo, _ := setupContentRepo(t)

	_, err := repo.UpdateContent(context.Background(), &core.ContentRecord{
		Id:           999,
		AttachmentId: 7,
		Status:       core.StatusFailed,
		ErrorMessage: "boom",
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindLatestByAttachment(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	_, err := repo.FindLatestByAttachment(ctx, 7)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	first, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 7,
		Status:       core.StatusProcessing,
	})
	require.NoError(t, err)

	got, err := repo.FindLatestByAttachment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.Id, got.Id)

	// A second create supersedes the first in the latest index.
	second, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 7,
		Status:       core.StatusProcessing,
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Id, second.Id)

	got, err = repo.FindLatestByAttachment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, second.Id, got.Id)
}

func TestFindLatestByAttachment_IsolatedPerAttachment(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	a, err := repo.CreateContent(ctx, &core.ContentRecord{AttachmentId: 1, Status: core.StatusProcessing})
	require.NoError(t, err)
	b, err := repo.CreateContent(ctx, &core.ContentRecord{AttachmentId: 2, Status: core.StatusProcessing})
	require.NoError(t, err)

	gotA, err := repo.FindLatestByAttachment(ctx, 1)
	require.NoError(t, err)
	gotB, err := repo.FindLatestByAttachment(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, a.Id, gotA.Id)
	assert.Equal(t, b.Id, gotB.Id)
}

func TestListLatestByStatus(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	failedA, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 1,
		Status:       core.StatusFailed,
		ErrorMessage: "download failed",
	})
	require.NoError(t, err)

	_, err = repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 2,
		Status:       core.StatusCompleted,
	})
	require.NoError(t, err)

	failedB, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 3,
		Status:       core.StatusFailed,
		ErrorMessage: "timeout",
	})
	require.NoError(t, err)

	failed, err := repo.ListLatestByStatus(ctx, core.StatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 2)

	ids := []core.ID{failed[0].Id, failed[1].Id}
	assert.Contains(t, ids, failedA.Id)
	assert.Contains(t, ids, failedB.Id)

	completed, err := repo.ListLatestByStatus(ctx, core.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	pending, err := repo.ListLatestByStatus(ctx, core.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestListLatestByStatus_SeesOnlyLiveRecords(t *testing.T) {
	repo, _ := setupContentRepo(t)
	ctx := context.Background()

	// A failed record superseded by a completed one for the same
	// attachment must not show up in the failed listing.
	_, err := repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 9,
		Status:       core.StatusFailed,
		ErrorMessage: "first try",
	})
	require.NoError(t, err)

	_, err = repo.CreateContent(ctx, &core.ContentRecord{
		AttachmentId: 9,
		Status:       core.StatusCompleted,
	})
	require.NoError(t, err)

	failed, err := repo.ListLatestByStatus(ctx, core.StatusFailed)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestListLatestByStatus_InvalidStatus(t *testing.T) {
	repo, _ := setupContentRepo(t)

	_, err := repo.ListLatestByStatus(context.Background(), core.ProcessingStatus(99))
	assert.ErrorIs(t, err, core.ErrInvalidProcessingStatus)
}
