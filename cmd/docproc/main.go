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


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	docproc "github.com/atlasdesk/docproc"
	"github.com/atlasdesk/docproc/ai"
	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/ingestion"
	"github.com/atlasdesk/docproc/reprocess"
	"github.com/atlasdesk/docproc/server"
	"github.com/atlasdesk/docproc/storage"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	godotenv.Load()

	app := &cli.App{
		Name:  "docproc",
		Usage: "Document processing pipeline for helpdesk attachments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the document processing HTTP server",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: ":8080",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent image analysis",
					},
				}, commonFlags()...),
			},
			{
				Name:   "add-attachment",
				Usage:  "Register an attachment by file URL",
				Action: addAttachmentCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "File URL of the attachment",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "File name (defaults to the last URL path segment)",
					},
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Declared media type, e.g. application/pdf",
						Required: true,
					},
				}, commonFlags()...),
			},
			{
				Name:   "process",
				Usage:  "Process a registered attachment",
				Action: processCommand,
				Flags: append([]cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Attachment ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "no-image-analysis",
						Usage: "Skip vision analysis for this run",
					},
					&cli.BoolFlag{
						Name:  "ocr",
						Usage: "Ask the vision model for verbatim transcription only",
					},
				}, commonFlags()...),
			},
			{
				Name:   "status",
				Usage:  "Show the latest processing record for an attachment",
				Action: statusCommand,
				Flags: append([]cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Attachment ID",
						Required: true,
					},
				}, commonFlags()...),
			},
			{
				Name:   "reprocess",
				Usage:  "Retry every attachment whose processing failed",
				Action: reprocessCommand,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "no-image-analysis",
						Usage: "Skip vision analysis while reprocessing",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per attachment",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N attachments",
						Value: 10,
					},
				}, commonFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by every command: storage location and vision
// service settings.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
			EnvVars:  []string{"DOCPROC_DB"},
		},
		&cli.StringFlag{
			Name:    "vision-host",
			Usage:   "Vision service host URL",
			Value:   "https://api.openai.com/v1",
			EnvVars: []string{"DOCPROC_VISION_HOST"},
		},
		&cli.StringFlag{
			Name:    "vision-model",
			Usage:   "Vision model name",
			Value:   "gpt-4o",
			EnvVars: []string{"DOCPROC_VISION_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Vision service API key (analysis is disabled without one)",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.DurationFlag{
			Name:    "vision-timeout",
			Usage:   "Per-call vision request timeout",
			Value:   30 * time.Second,
			EnvVars: []string{"DOCPROC_VISION_TIMEOUT"},
		},
	}
}

func buildAIConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithVisionHost(c.String("vision-host")),
		ai.WithVisionModel(c.String("vision-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithRequestTimeout(c.Duration("vision-timeout")),
	)
}

func openProcessor(c *cli.Context) (*docproc.Processor, error) {
	cfg := buildAIConfig(c)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vision configuration: %w", err)
	}
	p, err := docproc.NewProcessor(c.String("db"), docproc.WithAIConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return p, nil
}

func serveCommand(c *cli.Context) error {
	p, err := openProcessor(c)
	if err != nil {
		return err
	}
	defer p.Close()

	var opts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	service, err := p.NewIngestionService(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion service: %w", err)
	}
	defer service.Release()

	srv := &http.Server{
		Addr:    c.String("addr"),
		Handler: server.New(service, slog.Default()).Handler(),
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func addAttachmentCommand(c *cli.Context) error {
	p, err := openProcessor(c)
	if err != nil {
		return err
	}
	defer p.Close()

	fileURL := c.String("url")
	fileName := c.String("name")
	if fileName == "" {
		fileName = path.Base(fileURL)
	}

	added, err := p.AttachmentRepository().AddAttachment(c.Context, &core.Attachment{
		FileURL:  fileURL,
		FileName: fileName,
		FileType: c.String("type"),
	})
	if err != nil {
		return fmt.Errorf("failed to add attachment: %w", err)
	}

	fmt.Printf("Attachment registered\n")
	fmt.Printf("  ID:   %d\n", added.Id)
	fmt.Printf("  Name: %s\n", added.FileName)
	fmt.Printf("  Type: %s\n", added.FileType)
	return nil
}

func processCommand(c *cli.Context) error {
	p, err := openProcessor(c)
	if err != nil {
		return err
	}
	defer p.Close()

	service, err := p.NewIngestionService()
	if err != nil {
		return fmt.Errorf("failed to create ingestion service: %w", err)
	}
	defer service.Release()

	opts := &ingestion.IngestOptions{
		SkipImageAnalysis: c.Bool("no-image-analysis"),
	}
	if c.Bool("ocr") {
		opts.Mode = ai.ModeOCR
	}

	result, err := service.Ingest(c.Context, core.ID(c.Uint64("id")), opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Printf("Processing %s\n", result.Status)
	fmt.Printf("  Content ID:     %d\n", result.ContentID)
	fmt.Printf("  Text length:    %d\n", result.TextLength)
	fmt.Printf("  Chunks:         %d\n", result.ChunkCount)
	fmt.Printf("  Image analyses: %d\n", result.ImageAnalysisCount)
	if result.Reused {
		fmt.Printf("  Reused earlier completed record\n")
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	p, err := openProcessor(c)
	if err != nil {
		return err
	}
	defer p.Close()

	record, err := p.ContentRepository().FindLatestByAttachment(c.Context, core.ID(c.Uint64("id")))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("No processing record for attachment %d\n", c.Uint64("id"))
			return nil
		}
		return fmt.Errorf("failed to look up record: %w", err)
	}

	fmt.Printf("Attachment %d\n", record.AttachmentId)
	fmt.Printf("  Status:         %s\n", record.Status)
	fmt.Printf("  Content ID:     %d\n", record.Id)
	fmt.Printf("  Text length:    %d\n", len(record.ExtractedText))
	fmt.Printf("  Chunks:         %d\n", len(record.ContentChunks))
	fmt.Printf("  Image analyses: %d\n", record.ImageAnalysisCount)
	fmt.Printf("  Updated:        %s\n", record.UpdatedAt.Format(time.RFC3339))
	if record.ErrorMessage != "" {
		fmt.Printf("  Error:          %s\n", record.ErrorMessage)
	}
	return nil
}

func reprocessCommand(c *cli.Context) error {
	p, err := openProcessor(c)
	if err != nil {
		return err
	}
	defer p.Close()

	service, err := p.NewIngestionService()
	if err != nil {
		return fmt.Errorf("failed to create ingestion service: %w", err)
	}
	defer service.Release()

	cfg := &reprocess.Config{
		ReportInterval:    c.Int("report-interval"),
		MaxRetries:        c.Int("max-retries"),
		RetryDelay:        c.Duration("retry-delay"),
		SkipImageAnalysis: c.Bool("no-image-analysis"),
	}
	if cfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	r, err := reprocess.NewReprocessor(p.ContentRepository(), service, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reprocessor: %w", err)
	}

	summary, err := r.Run(c.Context)
	if err != nil {
		return fmt.Errorf("reprocessing failed: %w", err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d attachments still failing", summary.Failed, summary.Total)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
