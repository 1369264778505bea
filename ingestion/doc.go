// Package ingestion orchestrates document processing for attachments.
//
// The Service type manages the processing workflow for an attachment:
//   - Downloading the file from its URL
//   - Extracting text and images by declared media type
//   - Analyzing images concurrently through a vision service
//   - Chunking the text for retrieval
//   - Persisting the content record through its status transitions
//
// Records move pending -> processing -> completed or failed. Processing the
// same attachment again reuses the outcome: a completed record is returned
// as-is, a failed or interrupted one is retried in place. Image analysis is
// best-effort; an unavailable vision service never fails the document.
package ingestion
