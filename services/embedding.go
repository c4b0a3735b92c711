package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"approvehub/config"

	"google.golang.org/genai"
)

const defaultEmbeddingModel = "gemini-embedding-001"

// Embedder produces a dense vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder embeds text through the Gemini embed-content API. The client
// is constructed once, on the first Embed call; concurrent first calls all
// observe the same initialization result. Initialization failure is permanent
// for the process and surfaces on every call, so duplicate checks fail closed
// instead of silently passing.
type GeminiEmbedder struct {
	apiKey string
	model  string

	once    sync.Once
	client  *genai.Client
	initErr error
}

var (
	sharedEmbedder *GeminiEmbedder
	embedderOnce   sync.Once
)

// InitEmbeddingService wires the process-wide embedding provider from config.
// The model client itself is not created until the first embedding is needed.
func InitEmbeddingService(cfg *config.Config) {
	embedderOnce.Do(func() {
		model := cfg.Gemini.EmbeddingModel
		if model == "" {
			model = defaultEmbeddingModel
		}
		sharedEmbedder = &GeminiEmbedder{apiKey: cfg.Gemini.ApiKey, model: model}
	})
}

// GetEmbedder returns the shared embedding provider.
func GetEmbedder() Embedder {
	return sharedEmbedder
}

// Embed returns the embedding vector for text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	g.once.Do(func() {
		cfg := &genai.ClientConfig{}
		if g.apiKey != "" {
			cfg.APIKey = g.apiKey
		}
		g.client, g.initErr = genai.NewClient(ctx, cfg)
	})
	if g.initErr != nil {
		return nil, fmt.Errorf("embedding model unavailable: %w", g.initErr)
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("embedding response contained no vector")
	}
	return resp.Embeddings[0].Values, nil
}
