// Package reprocess retries attachments whose processing previously failed.
//
// The Reprocessor scans the live content records for failed status and runs
// each attachment back through the ingestion service, with per-attachment
// retry and exponential backoff, progress reporting, and a final summary.
// Attachments that keep failing retain their failed record and latest error
// message.
package reprocess
