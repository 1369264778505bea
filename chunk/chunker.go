package chunk

import (
	"fmt"
	"strings"

	"github.com/atlasdesk/docproc/core"
)

// DefaultMaxChunkSize bounds chunk length in bytes. Sized so a chunk fits
// comfortably in an embedding or retrieval window.
const DefaultMaxChunkSize = 1000

// Config holds chunker settings.
type Config struct {
	// MaxChunkSize is the accumulation bound in bytes. Zero or negative
	// selects DefaultMaxChunkSize.
	MaxChunkSize int
}

// Chunker splits extracted text into retrieval-sized chunks on sentence
// boundaries and appends image analysis chunks after the text chunks.
type Chunker struct {
	maxChunkSize int
}

func New(cfg Config) *Chunker {
	size := cfg.MaxChunkSize
	if size <= 0 {
		size = DefaultMaxChunkSize
	}
	return &Chunker{maxChunkSize: size}
}

// Chunk splits text on sentence terminators and accumulates sentences
// greedily up to the configured bound. A sentence that would push the current
// chunk past the bound starts a new chunk; a single sentence longer than the
// bound becomes its own oversized chunk. Each image analysis is appended as a
// separate chunk, numbered in input order, after all text chunks.
func (c *Chunker) Chunk(text string, analyses []core.ImageAnalysis) []string {
	chunks := c.splitText(text)
	for i, a := range analyses {
		chunks = append(chunks, fmt.Sprintf("[IMAGE ANALYSIS %d]: %s", i+1, a.Analysis))
	}
	return chunks
}

func (c *Chunker) splitText(text string) []string {
	var chunks []string
	var current string

	for _, sentence := range splitSentences(text) {
		switch {
		case current == "":
			current = sentence
		case len(current)+len(sentence) > c.maxChunkSize:
			chunks = append(chunks, current+".")
			current = sentence
		default:
			current += ". " + sentence
		}
	}
	if current != "" {
		chunks = append(chunks, current+".")
	}
	return chunks
}

// splitSentences breaks text on runs of sentence terminators, trimming
// whitespace and dropping empty fragments.
func splitSentences(text string) []string {
	var sentences []string
	for _, frag := range strings.FieldsFunc(text, isTerminator) {
		if s := strings.TrimSpace(frag); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
