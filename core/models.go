package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. Attachment IDs are
// derived from the file URL this way, so registering the same file twice is a no-op.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ProcessingStatus identifies where a content record is in its lifecycle.
type ProcessingStatus int

const (
	// StatusPending means the record exists but processing has not started.
	StatusPending ProcessingStatus = iota + 1
	// StatusProcessing means extraction is in flight.
	StatusProcessing
	// StatusCompleted means extraction finished and chunks are persisted.
	// Completed is terminal: re-ingestion short-circuits instead of reprocessing.
	StatusCompleted
	// StatusFailed means processing stopped with an error; the record keeps
	// the error message and may be retried in place.
	StatusFailed
)

// String returns the lowercase wire name of the status.
func (s ProcessingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attachment is an uploaded file reference. Attachments are immutable once
// referenced; this module only reads them.
type Attachment struct {
	Id         ID
	FileURL    string
	FileName   string
	FileType   string // MIME-like declared media type
	InsertedAt time.Time
}

// ContentRecord holds the processing lifecycle and extraction output for one
// attachment. At most one live (non-superseded) record exists per attachment;
// repositories must look up the latest record before creating a new one.
type ContentRecord struct {
	Id                 ID
	AttachmentId       ID
	ExtractedText      string
	ContentChunks      []string
	Status             ProcessingStatus
	ErrorMessage       string // set only when Status is StatusFailed
	ImageAnalysisCount int    // number of image analyses merged into the chunks
	InsertedAt         time.Time
	UpdatedAt          time.Time // refreshed on every status transition
}

// ImageAnalysis is the transient result of a vision-model pass over one image.
// It is consumed by the chunker and discarded; the analysis text survives only
// inside ContentRecord.ContentChunks.
type ImageAnalysis struct {
	Analysis   string
	Confidence float64 // in [0,1]
}
