package ai

import "errors"

var (
	// ErrNilRequest indicates AnalyzeImage was called with no request.
	ErrNilRequest = errors.New("ai: nil analysis request")

	// ErrEmptyImage indicates the request carried neither image bytes nor
	// an image URL.
	ErrEmptyImage = errors.New("ai: empty image")
)
