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


package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/extract"
	"github.com/atlasdesk/docproc/ingestion"
)

// Server exposes document processing over HTTP.
type Server struct {
	service *ingestion.Service
	logger  *slog.Logger
}

// New creates a Server around the ingestion service.
func New(service *ingestion.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		service: service,
		logger:  logger.With("component", "server"),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/documents/process", s.handleProcess)
	return mux
}

type processRequest struct {
	AttachmentID uint64 `json:"attachment_id"`

	// EnableImageAnalysis defaults to true when absent.
	EnableImageAnalysis *bool `json:"enable_image_analysis"`
}

type processResponse struct {
	Success            bool   `json:"success"`
	ContentID          uint64 `json:"content_id"`
	TextLength         int    `json:"text_length"`
	ChunkCount         int    `json:"chunk_count"`
	ImageAnalysisCount int    `json:"image_analysis_count"`
	HasImageAnalysis   bool   `json:"has_image_analysis"`
	Reused             bool   `json:"reused"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	runID := uuid.NewString()
	logger := s.logger.With("run", runID)

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AttachmentID == 0 {
		writeError(w, http.StatusBadRequest, "attachment_id is required")
		return
	}

	opts := &ingestion.IngestOptions{}
	if req.EnableImageAnalysis != nil && !*req.EnableImageAnalysis {
		opts.SkipImageAnalysis = true
	}

	logger.Info("processing attachment",
		"attachment", req.AttachmentID,
		"image_analysis", !opts.SkipImageAnalysis)

	result, err := s.service.Ingest(r.Context(), core.ID(req.AttachmentID), opts)
	if err != nil {
		logger.Error("processing failed", "attachment", req.AttachmentID, "err", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	logger.Info("processing finished",
		"attachment", req.AttachmentID,
		"content", result.ContentID,
		"chunks", result.ChunkCount,
		"reused", result.Reused)

	writeJSON(w, http.StatusOK, processResponse{
		Success:            true,
		ContentID:          uint64(result.ContentID),
		TextLength:         result.TextLength,
		ChunkCount:         result.ChunkCount,
		ImageAnalysisCount: result.ImageAnalysisCount,
		HasImageAnalysis:   result.ImageAnalysisCount > 0,
		Reused:             result.Reused,
	})
}

// statusFor maps processing errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ingestion.ErrAttachmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, extract.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrDownloadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
