// Package hf provides an embedding provider using the Hugging Face
// Inference API feature-extraction endpoint.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/clovermead/semdex/internal/domain"
	"github.com/clovermead/semdex/internal/metrics"
)

const defaultBaseURL = "https://router.huggingface.co/hf-inference"

// Embedder calls the Hugging Face feature-extraction endpoint over plain HTTP.
type Embedder struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	provider   string
	logger     *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewEmbedder creates a Hugging Face embedding provider.
func NewEmbedder(cfg *Config) *Embedder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Embedder{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		provider:   "huggingface",
		logger:     cfg.Logger,
	}
}

type embedRequest struct {
	Inputs string `json:"inputs"`
}

// Embed implements domain.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	body, err := json.Marshal(embedRequest{Inputs: text})
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/pipeline/feature-extraction", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	start := time.Now()

	resp, err := e.httpClient.Do(req)
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "transport").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("feature extraction request: %w: %w",
			err, domain.ErrEmbeddingUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "transport").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("read response: %w: %w",
			err, domain.ErrEmbeddingUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "api_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("embedding API error %d: %s: %w",
			resp.StatusCode, truncate(raw, 200), domain.ErrEmbeddingUnavailable)
	}

	vec, err := normalizeShape(raw)
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "bad_shape").Inc()
		return domain.EmbeddingResult{}, err
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, e.model).Observe(time.Since(start).Seconds())

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck issues a HEAD request against the model endpoint.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model endpoint: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("model endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// normalizeShape converts a feature-extraction response body into a flat
// vector. The API returns different shapes depending on the model: a flat
// sequence of floats, a nested sequence (one row per input), or an object
// wrapping the rows under "embeddings". Anything outside this closed set
// fails with domain.ErrInvalidEmbeddingShape.
func normalizeShape(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil, fmt.Errorf("empty embedding vector: %w", domain.ErrInvalidEmbeddingShape)
		}
		return flat, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("empty embedding rows: %w", domain.ErrInvalidEmbeddingShape)
		}
		return nested[0], nil
	}

	var wrapped struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Embeddings) > 0 {
		if len(wrapped.Embeddings[0]) == 0 {
			return nil, fmt.Errorf("empty wrapped embedding: %w", domain.ErrInvalidEmbeddingShape)
		}
		return wrapped.Embeddings[0], nil
	}

	return nil, fmt.Errorf("unrecognized response shape: %w", domain.ErrInvalidEmbeddingShape)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
