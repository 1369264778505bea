package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/atlasdesk/docproc/ai"
	"github.com/atlasdesk/docproc/chunk"
	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/extract"
	"github.com/atlasdesk/docproc/storage"
)

// Service orchestrates document processing: download, extraction, image
// analysis, chunking, and persistence of the resulting content record.
type Service struct {
	attachments storage.AttachmentRepository
	contents    storage.ContentRepository
	analyzer    ai.ImageAnalyzer
	registry    *extract.Registry
	chunker     *chunk.Chunker
	fetcher     Fetcher
	pool        *ants.Pool
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithPoolSize sets the worker pool size for concurrent image analysis.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Service) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithFetcher replaces the attachment fetcher.
// Default is an HTTP fetcher with a 60 second timeout.
func WithFetcher(fetcher Fetcher) Option {
	return func(s *Service) error {
		if fetcher != nil {
			s.fetcher = fetcher
		}
		return nil
	}
}

// WithChunker replaces the text chunker.
func WithChunker(chunker *chunk.Chunker) Option {
	return func(s *Service) error {
		if chunker != nil {
			s.chunker = chunker
		}
		return nil
	}
}

// WithRegistry replaces the extractor registry.
func WithRegistry(registry *extract.Registry) Option {
	return func(s *Service) error {
		if registry != nil {
			s.registry = registry
		}
		return nil
	}
}

// NewService creates a document processing service.
func NewService(
	attachments storage.AttachmentRepository,
	contents storage.ContentRepository,
	analyzer ai.ImageAnalyzer,
	opts ...Option,
) (*Service, error) {
	if attachments == nil {
		return nil, ErrAttachmentRepositoryRequired
	}
	if contents == nil {
		return nil, ErrContentRepositoryRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		attachments: attachments,
		contents:    contents,
		analyzer:    analyzer,
		registry:    extract.NewRegistry(),
		chunker:     chunk.New(chunk.Config{}),
		fetcher:     NewHTTPFetcher(0),
		pool:        pool,
		logger:      slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// IngestOptions holds optional parameters for processing.
type IngestOptions struct {
	// SkipImageAnalysis disables vision calls for this run. Image
	// documents still complete with a viewing placeholder.
	SkipImageAnalysis bool

	// Mode selects the vision prompt register. The zero value asks for
	// comprehensive analysis.
	Mode ai.Mode
}

// Result summarizes a completed processing run.
type Result struct {
	ContentID          core.ID
	Status             core.ProcessingStatus
	TextLength         int
	ChunkCount         int
	ImageAnalysisCount int

	// Reused is true when a completed record for the attachment already
	// existed and processing was skipped.
	Reused bool
}

// Ingest processes the attachment end to end and persists the outcome.
//
// A completed record for the attachment short-circuits: the stored result is
// returned with Reused=true and nothing is written. A non-completed record
// (an earlier failure or an interrupted run) is reused for the retry rather
// than inserting a second row. Failures during processing mark the record
// failed with the cause and return the error; an unknown attachment returns
// ErrAttachmentNotFound without writing anything.
func (s *Service) Ingest(ctx context.Context, attachmentID core.ID, opts *IngestOptions) (*Result, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}

	attachment, err := s.attachments.GetAttachment(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrAttachmentNotFound, attachmentID)
		}
		return nil, err
	}

	existing, err := s.contents.FindLatestByAttachment(ctx, attachmentID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if existing != nil && existing.Status == core.StatusCompleted {
		s.logger.Info("attachment already processed",
			"attachment", attachmentID,
			"content", existing.Id)
		return resultFrom(existing, true), nil
	}

	record, err := s.claimRecord(ctx, attachmentID, existing)
	if err != nil {
		s.markFailed(ctx, attachmentID, nil, err.Error())
		return nil, err
	}

	data, err := s.fetcher.Fetch(ctx, attachment.FileURL)
	if err != nil {
		s.markFailed(ctx, attachmentID, record, err.Error())
		return nil, err
	}

	extractor, err := s.registry.Resolve(attachment.FileType)
	if err != nil {
		s.markFailed(ctx, attachmentID, record, err.Error())
		return nil, err
	}

	extracted, err := extractor.Extract(ctx, data, attachment.FileName)
	if err != nil {
		s.markFailed(ctx, attachmentID, record, err.Error())
		return nil, err
	}

	var analyses []core.ImageAnalysis
	if !opts.SkipImageAnalysis && len(extracted.Images) > 0 && s.analyzer.Enabled() {
		analyses = s.analyzeImages(ctx, extracted.Images, attachment.FileType, opts.Mode)
	}

	text := extracted.Text
	if text == "" && len(extracted.Images) > 0 {
		text = imageDocumentText(extracted.Images[0].Name, analyses)
	}

	record.Status = core.StatusCompleted
	record.ExtractedText = text
	record.ContentChunks = s.chunker.Chunk(text, analyses)
	record.ImageAnalysisCount = len(analyses)
	record.ErrorMessage = ""

	record, err = s.contents.UpdateContent(ctx, record)
	if err != nil {
		s.markFailed(ctx, attachmentID, record, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	s.logger.Info("attachment processed",
		"attachment", attachmentID,
		"content", record.Id,
		"text_length", len(record.ExtractedText),
		"chunks", len(record.ContentChunks),
		"image_analyses", record.ImageAnalysisCount)

	return resultFrom(record, false), nil
}

// claimRecord reuses a non-completed record for the retry, or creates a fresh
// one, and transitions it to processing.
func (s *Service) claimRecord(ctx context.Context, attachmentID core.ID, existing *core.ContentRecord) (*core.ContentRecord, error) {
	record := existing
	if record == nil {
		created, err := s.contents.CreateContent(ctx, &core.ContentRecord{
			AttachmentId: attachmentID,
			Status:       core.StatusPending,
		})
		if err != nil {
			return nil, err
		}
		record = created
	}

	record.Status = core.StatusProcessing
	record.ErrorMessage = ""
	return s.contents.UpdateContent(ctx, record)
}

// analyzeImages fans the images out over the worker pool and collects the
// available analyses in input order. Unavailable results and analyzer errors
// are logged and skipped.
func (s *Service) analyzeImages(ctx context.Context, images []extract.ImageRef, mediaType string, mode ai.Mode) []core.ImageAnalysis {
	results := make([]*ai.Result, len(images))

	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			res, err := s.analyzer.AnalyzeImage(ctx, &ai.Request{
				Image: ai.Image{
					Name:      img.Name,
					MediaType: mediaType,
					Data:      img.Data,
					URL:       img.URL,
				},
				ContextHint: fmt.Sprintf("Documentation image: %s", img.Name),
				Mode:        mode,
			})
			if err != nil {
				s.logger.Warn("image analysis error", "image", img.Name, "err", err)
				return
			}
			results[i] = res
		})
		if submitErr != nil {
			wg.Done()
			s.logger.Warn("failed to submit image analysis", "image", img.Name, "err", submitErr)
		}
	}
	wg.Wait()

	analyses := make([]core.ImageAnalysis, 0, len(images))
	for _, res := range results {
		if res != nil && res.Available {
			analyses = append(analyses, core.ImageAnalysis{
				Analysis:   res.Analysis,
				Confidence: res.Confidence,
			})
		}
	}
	return analyses
}

// markFailed records the failure cause on the in-flight record. If the record
// is gone it re-reads the latest one for the attachment, and inserts a failed
// row when none exists so the failure is never silent. Persistence trouble
// here is logged, not returned: the processing error is the one that matters.
func (s *Service) markFailed(ctx context.Context, attachmentID core.ID, record *core.ContentRecord, message string) {
	if record == nil {
		existing, err := s.contents.FindLatestByAttachment(ctx, attachmentID)
		if err == nil {
			record = existing
		}
	}

	if record == nil {
		_, err := s.contents.CreateContent(ctx, &core.ContentRecord{
			AttachmentId: attachmentID,
			Status:       core.StatusFailed,
			ErrorMessage: message,
		})
		if err != nil {
			s.logger.Error("failed to record processing failure",
				"attachment", attachmentID, "err", err)
		}
		return
	}

	record.Status = core.StatusFailed
	record.ErrorMessage = message
	if _, err := s.contents.UpdateContent(ctx, record); err != nil {
		s.logger.Error("failed to record processing failure",
			"attachment", attachmentID, "content", record.Id, "err", err)
	}
}

// imageDocumentText composes the extracted text for an image attachment from
// its first available analysis, or a viewing placeholder when analysis was
// unavailable or skipped.
func imageDocumentText(name string, analyses []core.ImageAnalysis) string {
	if len(analyses) > 0 {
		return fmt.Sprintf("[IMAGE ANALYZED: %s] %s", name, analyses[0].Analysis)
	}
	return fmt.Sprintf("[IMAGE: %s] - image available for viewing.", name)
}

func resultFrom(record *core.ContentRecord, reused bool) *Result {
	return &Result{
		ContentID:          record.Id,
		Status:             record.Status,
		TextLength:         len(record.ExtractedText),
		ChunkCount:         len(record.ContentChunks),
		ImageAnalysisCount: record.ImageAnalysisCount,
		Reused:             reused,
	}
}

// Release releases resources including the worker pool.
// The service should not be used after calling Release.
func (s *Service) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
