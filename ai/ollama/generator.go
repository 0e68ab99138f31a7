// Copyright 2025 Poiesic Systems
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


package ollama

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/insight/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Generator implements ai.Generator against the native Ollama API.
// It serves as the local fallback backend when a commercial endpoint
// is unreachable.
type Generator struct {
	client      llms.Model
	model       string
	temperature float64
	logger      *slog.Logger
}

// NewGenerator creates a generator talking to an Ollama server.
// The host is the server base URL without the /v1 suffix, for example
// "http://localhost:11434".
func NewGenerator(host, model string, temperature float64) (ai.Generator, error) {
	if host == "" {
		return nil, errors.New("ollama: host is required")
	}
	if model == "" {
		return nil, errors.New("ollama: model is required")
	}

	client, err := ollama.New(
		ollama.WithServerURL(host),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      slog.Default().With("component", "ollama-generator"),
	}, nil
}

// GenerateJSON sends the prompts to the Ollama server in JSON mode and
// returns the raw response text.
func (g *Generator) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(g.temperature),
		llms.WithJSONMode())
	if err != nil {
		g.logger.Error("failed to generate content", "model", g.model, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model", "model", g.model)
		return "", errors.New("ollama: model returned no choices")
	}

	return response.Choices[0].Content, nil
}

// Name identifies the backend for logging and failure reasons.
func (g *Generator) Name() string {
	return "ollama:" + g.model
}
