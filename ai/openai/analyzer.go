// Copyright 2025 Atlasdesk Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/atlasdesk/docproc/ai"
)

// analysisConfidence is reported for every successful vision call. The chat
// API exposes no per-response confidence, so a fixed score marks "model
// answered" versus "no analysis".
const analysisConfidence = 0.85

const maxAnalysisTokens = 1000

// ImageAnalyzer implements ai.ImageAnalyzer using OpenAI-compatible vision
// chat APIs.
type ImageAnalyzer struct {
	client  llms.Model
	enabled bool
	timeout time.Duration
	logger  *slog.Logger
}

var _ ai.ImageAnalyzer = (*ImageAnalyzer)(nil)

// newImageAnalyzer is an internal constructor that returns the concrete type.
func newImageAnalyzer(config *ai.Config) (*ImageAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-analyzer")

	// Without an API key the analyzer stays disabled: every call reports
	// unavailable and the pipeline proceeds without analyses.
	if config.APIKey == "" {
		logger.Info("vision analysis disabled, no API key configured")
		return &ImageAnalyzer{
			enabled: false,
			timeout: config.RequestTimeout,
			logger:  logger,
		}, nil
	}

	client, err := openai.New(
		openai.WithBaseURL(config.VisionHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &ImageAnalyzer{
		client:  client,
		enabled: true,
		timeout: config.RequestTimeout,
		logger:  logger,
	}, nil
}

// NewImageAnalyzer creates a vision analyzer using the provided configuration.
//
// Returns ai.ImageAnalyzer interface to enforce abstraction.
func NewImageAnalyzer(config *ai.Config) (ai.ImageAnalyzer, error) {
	return newImageAnalyzer(config)
}

// Enabled reports whether an API key was configured.
func (a *ImageAnalyzer) Enabled() bool {
	return a.enabled
}

// AnalyzeImage describes the image via the vision chat API. Service trouble
// of any kind (transport error, non-2xx, empty completion) yields an
// unavailable result, not an error.
func (a *ImageAnalyzer) AnalyzeImage(ctx context.Context, req *ai.Request) (*ai.Result, error) {
	if req == nil {
		return nil, ai.ErrNilRequest
	}
	if len(req.Image.Data) == 0 && req.Image.URL == "" {
		return nil, fmt.Errorf("%w: %s", ai.ErrEmptyImage, req.Image.Name)
	}

	if !a.enabled {
		return &ai.Result{}, nil
	}

	imageURL := req.Image.URL
	if imageURL == "" {
		imageURL = dataURL(req.Image.MediaType, req.Image.Data)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(visionSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt(req.Mode, req.ContextHint)),
				llms.ImageURLWithDetailPart(imageURL, "high"),
			},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	response, err := a.client.GenerateContent(callCtx, content,
		llms.WithTemperature(0.1),
		llms.WithMaxTokens(maxAnalysisTokens))
	if err != nil {
		a.logger.Warn("vision analysis unavailable",
			"image", req.Image.Name,
			"err", err)
		return &ai.Result{}, nil
	}

	if len(response.Choices) < 1 {
		a.logger.Debug("no choices returned from vision model", "image", req.Image.Name)
		return &ai.Result{}, nil
	}

	analysis := strings.TrimSpace(response.Choices[0].Content)
	if analysis == "" {
		return &ai.Result{}, nil
	}

	a.logger.Debug("image analyzed",
		"image", req.Image.Name,
		"mode", req.Mode.String(),
		"length", len(analysis))

	return &ai.Result{
		Available:  true,
		Analysis:   analysis,
		Confidence: analysisConfidence,
	}, nil
}

func dataURL(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "image/png"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
