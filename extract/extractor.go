package extract

import "context"

// Result is what an extractor produces from an attachment's raw bytes.
// Text carries the document body; Images carries references to embedded or
// standalone images that may be analyzed separately. The pair is the stable
// seam between extraction and downstream analysis: a real PDF or Word parsing
// engine plugs in behind the same contract.
type Result struct {
	Text   string
	Images []ImageRef
}

// ImageRef points at one image found during extraction.
// Exactly one of Data or URL is set.
type ImageRef struct {
	Name string
	Data []byte
	URL  string
}

// Extractor can extract text from one family of media types.
type Extractor interface {
	// Extract produces text and image references from raw file bytes.
	Extract(ctx context.Context, data []byte, fileName string) (*Result, error)

	// MediaTypes returns the lowercase substrings of declared media types
	// this extractor claims, e.g. "pdf" or "word".
	MediaTypes() []string
}
