package extract

import (
	"fmt"
	"strings"
)

// Registry dispatches declared media types to extractors by case-insensitive
// substring match. Registration order is significant: the first extractor
// whose substring appears in the declared type wins, so more specific
// extractors must be registered first.
type Registry struct {
	extractors []Extractor
}

// NewRegistry returns a Registry with the built-in extractors registered:
// PDF, Word, plain text, and image, in that order.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, e := range []Extractor{
		&PDFExtractor{},
		&WordExtractor{},
		&TextExtractor{},
		&ImageExtractor{},
	} {
		r.Register(e)
	}
	return r
}

// Register appends an extractor to the dispatch order.
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// Resolve returns the first registered extractor claiming the declared media
// type. Returns ErrUnsupportedMediaType if none match.
func (r *Registry) Resolve(declaredMediaType string) (Extractor, error) {
	mediaType := strings.ToLower(declaredMediaType)
	for _, e := range r.extractors {
		for _, sub := range e.MediaTypes() {
			if strings.Contains(mediaType, sub) {
				return e, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, declaredMediaType)
}
