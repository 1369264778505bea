package ai

// Mode selects the analysis register a vision prompt asks for.
type Mode int

const (
	// ModeComprehensive asks for full text extraction plus a description
	// of technical elements. This is the default for document ingestion.
	ModeComprehensive Mode = iota

	// ModeOCR asks for verbatim text transcription only.
	ModeOCR
)

func (m Mode) String() string {
	switch m {
	case ModeComprehensive:
		return "comprehensive"
	case ModeOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// Image is the picture to analyze. Exactly one of Data or URL must be set;
// MediaType is required when Data is set so the payload can be encoded as a
// data URL.
type Image struct {
	Name      string
	MediaType string
	Data      []byte
	URL       string
}

// Request describes one analysis call. ContextHint is a short free-form
// description of where the image comes from ("Documentation image:
// diagram.png"); when set it is embedded in the user prompt so the model
// knows what it is looking at.
type Request struct {
	Image       Image
	ContextHint string
	Mode        Mode
}

// Result is the outcome of an analysis attempt. Available=false means the
// analyzer could not run (not configured, transport failure, non-2xx from the
// vision service); callers treat that as "no analysis", never as a processing
// failure.
type Result struct {
	Available  bool
	Analysis   string
	Confidence float64
}
