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


// Package ai provides abstractions for the vision services used by docproc.
//
// The package defines the ImageAnalyzer interface, allowing the ingestion
// pipeline to depend on an abstraction rather than a concrete vision
// implementation.
//
// # Soft-fail Contract
//
// Vision analysis is an enrichment, never a gate: an analyzer that is not
// configured, cannot reach its service, or gets a non-2xx response reports
// Result.Available=false instead of returning an error. The document still
// completes processing, just without analysis chunks. Errors from
// AnalyzeImage indicate caller mistakes (empty image, nil request), not
// service trouble.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible
//     vision APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (openai.NewImageAnalyzer) return interface types to
// enforce abstraction; test utility constructors (mock.NewImageAnalyzer)
// return concrete types so tests can inject behavior and assert call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	analyzer, err := openai.NewImageAnalyzer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := analyzer.AnalyzeImage(ctx, &ai.Request{
//	    Image: ai.Image{Name: "diagram.png", MediaType: "image/png", Data: data},
//	})
//	if res.Available {
//	    fmt.Println(res.Analysis)
//	}
package ai
