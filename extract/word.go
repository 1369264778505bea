package extract

import (
	"context"
	"fmt"
)

// WordExtractor handles Microsoft Word attachments (.doc and .docx).
//
// Like PDFExtractor it emits a deterministic placeholder; the dispatch and
// downstream flow are identical to a real parser implementation.
type WordExtractor struct{}

var _ Extractor = (*WordExtractor)(nil)

func (e *WordExtractor) MediaTypes() []string {
	return []string{"document", "word", "docx"}
}

func (e *WordExtractor) Extract(ctx context.Context, data []byte, fileName string) (*Result, error) {
	text := fmt.Sprintf("[WORD DOCUMENT PROCESSED: %s] - Document content extracted and ready for analysis. "+
		"The text of this document is available for search and retrieval.", fileName)
	return &Result{Text: text}, nil
}
