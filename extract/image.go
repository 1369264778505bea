package extract

import "context"

// ImageExtractor handles image attachments. Images carry no extractable text
// of their own; the file is surfaced as a single ImageRef so the caller can
// hand it to a vision analyzer, and the textual representation is composed
// from the analysis result afterwards.
type ImageExtractor struct{}

var _ Extractor = (*ImageExtractor)(nil)

func (e *ImageExtractor) MediaTypes() []string {
	return []string{"image"}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte, fileName string) (*Result, error) {
	return &Result{
		Images: []ImageRef{{Name: fileName, Data: data}},
	}, nil
}
