package openai

import (
	"fmt"

	"github.com/atlasdesk/docproc/ai"
)

const visionSystemPrompt = `You are a document analysis assistant for a technical support knowledge base.
When given an image, extract all visible text and describe technical elements precisely.
Report user interface components, error messages, diagrams, charts, and tables in enough
detail that a reader who cannot see the image understands its content. Do not speculate
about elements that are not visible. Respond in plain prose without markdown formatting.`

const comprehensivePrompt = `Analyze this image thoroughly. Extract all visible text verbatim, then describe
the technical elements: interface components, error messages, diagrams, charts, and tables.
Conclude with a one-sentence summary of what the image shows.`

const ocrPrompt = `Transcribe all text visible in this image exactly as written, preserving line breaks
and reading order. Output only the transcription, nothing else.`

// userPrompt selects the instruction for the requested analysis mode and
// embeds the context hint, when one was given, so the model knows where the
// image comes from.
func userPrompt(mode ai.Mode, contextHint string) string {
	prompt := comprehensivePrompt
	if mode == ai.ModeOCR {
		prompt = ocrPrompt
	}
	if contextHint == "" {
		return prompt
	}
	return fmt.Sprintf("%s\n\nContext: %s", prompt, contextHint)
}
