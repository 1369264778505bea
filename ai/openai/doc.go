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


// Package openai implements ai.ImageAnalyzer using OpenAI-compatible vision
// APIs.
//
// The analyzer talks to any service that exposes the OpenAI chat completions
// endpoint with image input (OpenAI, Ollama, LocalAI, vLLM) through the
// langchaingo library.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithVisionModel("gpt-4o"),
//	)
//
//	analyzer, err := openai.NewImageAnalyzer(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := analyzer.AnalyzeImage(ctx, &ai.Request{
//	    Image: ai.Image{Name: "screenshot.png", MediaType: "image/png", Data: data},
//	})
//
// An analyzer constructed without an API key is valid but disabled: every
// call reports an unavailable result instead of failing.
package openai
