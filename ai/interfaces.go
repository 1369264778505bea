package ai

import "context"

// ImageAnalyzer produces a textual description of an image using a vision
// model. Implementations must be thread-safe for concurrent use.
//
// Analysis is best-effort: an implementation that cannot reach its backing
// service, or that is not configured at all, reports Result.Available=false
// rather than an error. Errors are reserved for caller mistakes such as an
// empty image.
type ImageAnalyzer interface {
	// AnalyzeImage describes the image in the request. The returned
	// Result carries the analysis text and a confidence score when
	// Available is true; when Available is false the analysis is absent
	// and the document should be processed without it.
	AnalyzeImage(ctx context.Context, req *Request) (*Result, error)

	// Enabled reports whether the analyzer is configured to perform real
	// analysis. Callers may skip image work entirely when false.
	Enabled() bool
}
