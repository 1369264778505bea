package extract

import (
	"bytes"
	"context"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextExtractor handles plain-text attachments. The raw bytes are decoded as
// UTF-8 with any leading byte-order mark stripped.
type TextExtractor struct{}

var _ Extractor = (*TextExtractor)(nil)

func (e *TextExtractor) MediaTypes() []string {
	return []string{"text", "plain"}
}

func (e *TextExtractor) Extract(ctx context.Context, data []byte, fileName string) (*Result, error) {
	return &Result{Text: string(bytes.TrimPrefix(data, utf8BOM))}, nil
}
