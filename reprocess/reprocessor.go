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


package reprocess

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/ingestion"
	"github.com/atlasdesk/docproc/storage"
)

// Ingestor processes a single attachment. *ingestion.Service satisfies it.
type Ingestor interface {
	Ingest(ctx context.Context, attachmentID core.ID, opts *ingestion.IngestOptions) (*ingestion.Result, error)
}

// Config holds configuration for the reprocessing operation.
type Config struct {
	// ReportInterval is how often to report progress (number of attachments)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per attachment
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// SkipImageAnalysis disables vision calls during reprocessing
	SkipImageAnalysis bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes the outcome of a reprocessing run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Reprocessor retries every attachment whose live content record is failed.
type Reprocessor struct {
	contents storage.ContentRepository
	ingestor Ingestor
	config   *Config
	progress io.Writer
}

// NewReprocessor creates a reprocessor.
// progress: where to write progress output (typically os.Stderr)
func NewReprocessor(contents storage.ContentRepository, ingestor Ingestor, config *Config, progress io.Writer) (*Reprocessor, error) {
	if contents == nil {
		return nil, ErrContentRepositoryRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reprocessor{
		contents: contents,
		ingestor: ingestor,
		config:   config,
		progress: progress,
	}, nil
}

// Run retries all failed attachments sequentially. Attachments that still
// fail after the configured retries are counted but do not stop the run;
// their record keeps the failed status and the latest error message.
func (r *Reprocessor) Run(ctx context.Context) (*Summary, error) {
	failed, err := r.contents.ListLatestByStatus(ctx, core.StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed records: %w", err)
	}

	summary := &Summary{Total: len(failed)}
	if summary.Total == 0 {
		fmt.Fprintf(r.progress, "No failed attachments to reprocess\n")
		return summary, nil
	}

	fmt.Fprintf(r.progress, "Reprocessing %d failed attachments (max retries: %d)\n",
		summary.Total, r.config.MaxRetries)

	tracker := NewProgressTracker(r.progress, summary.Total, r.config.ReportInterval)
	tracker.Start()

	opts := &ingestion.IngestOptions{SkipImageAnalysis: r.config.SkipImageAnalysis}

	for _, record := range failed {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		attempt := func() error {
			_, err := r.ingestor.Ingest(ctx, record.AttachmentId, opts)
			return err
		}

		if err := RetryWithBackoff(ctx, attempt, r.config.MaxRetries, r.config.RetryDelay); err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Failed++
			fmt.Fprintf(r.progress, "\nattachment %d still failing: %v\n", record.AttachmentId, err)
		} else {
			summary.Succeeded++
		}
		tracker.Increment(1)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reprocessing complete. %d succeeded, %d still failing, in %v\n",
		summary.Succeeded, summary.Failed, elapsed.Round(time.Second))

	return summary, nil
}
