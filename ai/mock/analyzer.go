package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlasdesk/docproc/ai"
)

// ImageAnalyzer is a mock implementation of ai.ImageAnalyzer for testing.
// It is safe for concurrent use.
type ImageAnalyzer struct {
	mu          sync.Mutex
	analyzeFunc func(ctx context.Context, req *ai.Request) (*ai.Result, error)
	enabled     bool
	callCount   int
	lastRequest *ai.Request
}

var _ ai.ImageAnalyzer = (*ImageAnalyzer)(nil)

// NewImageAnalyzer creates a mock analyzer with default behavior: enabled,
// reporting every image as analyzed with a canned description naming it.
//
// Returns the concrete type so tests can inject behavior and inspect calls.
func NewImageAnalyzer() *ImageAnalyzer {
	return &ImageAnalyzer{enabled: true}
}

// WithAnalyzeFunc replaces the default analysis behavior.
// Returns the analyzer for chaining.
func (m *ImageAnalyzer) WithAnalyzeFunc(f func(ctx context.Context, req *ai.Request) (*ai.Result, error)) *ImageAnalyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzeFunc = f
	return m
}

// WithEnabled sets what Enabled reports. A disabled mock still records calls
// but reports every analysis as unavailable, mirroring the production
// analyzer without an API key.
func (m *ImageAnalyzer) WithEnabled(enabled bool) *ImageAnalyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	return m
}

func (m *ImageAnalyzer) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// AnalyzeImage records the call and runs the injected function, falling back
// to the default canned analysis.
func (m *ImageAnalyzer) AnalyzeImage(ctx context.Context, req *ai.Request) (*ai.Result, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = req
	f := m.analyzeFunc
	enabled := m.enabled
	m.mu.Unlock()

	if req == nil {
		return nil, ai.ErrNilRequest
	}

	if f != nil {
		return f(ctx, req)
	}
	if !enabled {
		return &ai.Result{}, nil
	}
	return &ai.Result{
		Available:  true,
		Analysis:   fmt.Sprintf("mock analysis of %s", req.Image.Name),
		Confidence: 0.85,
	}, nil
}

// LastRequest returns the most recent request passed to AnalyzeImage, or
// nil when it was never called.
func (m *ImageAnalyzer) LastRequest() *ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// CallCount returns how many times AnalyzeImage was invoked.
func (m *ImageAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *ImageAnalyzer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
	m.analyzeFunc = nil
	m.enabled = true
}
