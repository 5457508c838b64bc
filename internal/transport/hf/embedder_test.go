package hf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/clovermead/semdex/internal/domain"
	"github.com/clovermead/semdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *Embedder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewEmbedder(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "sentence-transformers/all-MiniLM-L6-v2",
		Logger:  zap.NewNop(),
	})
}

func TestEmbed_FlatShape(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`[0.1, 0.2, 0.3]`))
	})

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(result.Embedding) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(result.Embedding))
	}
}

func TestEmbed_NestedShape(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[0.5, -0.5]]`))
	})

	result, err := emb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(result.Embedding) != 2 || result.Embedding[0] != 0.5 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
}

func TestEmbed_WrappedShape(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings": [[1, 2, 3, 4]]}`))
	})

	result, err := emb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(result.Embedding) != 4 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
}

func TestEmbed_UnrecognizedShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object without embeddings", `{"vector": [1, 2]}`},
		{"string", `"not a vector"`},
		{"empty flat", `[]`},
		{"empty nested", `[[]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := emb.Embed(context.Background(), "hello")
			if !errors.Is(err, domain.ErrInvalidEmbeddingShape) {
				t.Fatalf("expected ErrInvalidEmbeddingShape, got %v", err)
			}
		})
	}
}

func TestEmbed_APIError(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model loading"}`))
	})

	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestEmbed_ConnectionRefused(t *testing.T) {
	emb := NewEmbedder(&Config{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestEmbed_RequestPath(t *testing.T) {
	var gotPath string
	emb := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[0.1]`))
	})

	if _, err := emb.Embed(context.Background(), "hello"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	want := "/models/sentence-transformers/all-MiniLM-L6-v2/pipeline/feature-extraction"
	if gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
}
