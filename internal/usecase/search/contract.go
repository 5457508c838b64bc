package search

import (
	"context"

	"github.com/clovermead/semdex/internal/domain"
)

// Repository defines the storage contract for retrieval.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.Document, error)
}

// Embedder vectorizes query text into an embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
