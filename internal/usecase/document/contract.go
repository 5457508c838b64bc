package document

import (
	"context"

	"github.com/clovermead/semdex/internal/domain"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Insert(ctx context.Context, doc *domain.Document) (string, error)
	FindByID(ctx context.Context, id string) (domain.Document, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
