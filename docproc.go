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


package docproc

import (
	"log/slog"

	"github.com/atlasdesk/docproc/ai"
	"github.com/atlasdesk/docproc/ai/openai"
	"github.com/atlasdesk/docproc/ingestion"
	"github.com/atlasdesk/docproc/storage"
	"github.com/atlasdesk/docproc/storage/badger"
)

// Processor bundles storage, the vision analyzer, and the ingestion service
// behind one handle.
type Processor struct {
	backend        *badger.Backend
	attachmentRepo storage.AttachmentRepository
	contentRepo    storage.ContentRepository
	analyzer       ai.ImageAnalyzer
	logger         *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*processorOptions)

type processorOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the vision service configuration.
func WithAIConfig(cfg *ai.Config) ProcessorOption {
	return func(o *processorOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithInMemoryStorage keeps all records in memory. Intended for tests and
// experiments; nothing survives Close.
func WithInMemoryStorage() ProcessorOption {
	return func(o *processorOptions) {
		o.inMemory = true
	}
}

// NewProcessor opens the storage backend at filePath and wires the
// repositories and vision analyzer.
func NewProcessor(filePath string, opts ...ProcessorOption) (*Processor, error) {
	options := &processorOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	attachmentRepo, err := badger.NewAttachmentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	contentRepo, err := badger.NewContentRepository(backend)
	if err != nil {
		attachmentRepo.Close()
		backend.Close()
		return nil, err
	}

	analyzer, err := openai.NewImageAnalyzer(options.aiConfig)
	if err != nil {
		contentRepo.Close()
		attachmentRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Processor{
		backend:        backend,
		attachmentRepo: attachmentRepo,
		contentRepo:    contentRepo,
		analyzer:       analyzer,
		logger:         slog.Default(),
	}, nil
}

func (p *Processor) Close() error {
	if err := p.contentRepo.Close(); err != nil {
		p.logger.Error("error closing content repository", "err", err)
		return err
	}
	if err := p.attachmentRepo.Close(); err != nil {
		p.logger.Error("error closing attachment repository", "err", err)
		return err
	}
	if err := p.backend.Close(); err != nil {
		p.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (p *Processor) AttachmentRepository() storage.AttachmentRepository {
	return p.attachmentRepo
}

func (p *Processor) ContentRepository() storage.ContentRepository {
	return p.contentRepo
}

// ImageAnalyzer returns the configured vision analyzer.
func (p *Processor) ImageAnalyzer() ai.ImageAnalyzer {
	return p.analyzer
}

// NewIngestionService creates a processing service over the processor's
// repositories and analyzer.
func (p *Processor) NewIngestionService(opts ...ingestion.Option) (*ingestion.Service, error) {
	return ingestion.NewService(p.attachmentRepo, p.contentRepo, p.analyzer, opts...)
}
