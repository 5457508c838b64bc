// Package document handles document ingestion and lookup.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clovermead/semdex/internal/domain"
)

// Service handles document ingestion with automatic vectorization, and lookup.
type Service struct {
	repo     Repository
	embedder Embedder
}

// New creates a document service.
func New(repo Repository, embedder Embedder) *Service {
	return &Service{repo: repo, embedder: embedder}
}

// IngestResult reports a stored document's identifier and vector dimensionality.
type IngestResult struct {
	ID              string
	EmbeddingLength int
}

// Ingest embeds the text and persists it as a new document. Single-shot:
// there is no intermediate state, a failure at any step fails the request.
func (s *Service) Ingest(ctx context.Context, text string, metadata map[string]any) (IngestResult, error) {
	if text == "" {
		return IngestResult{}, domain.ErrMissingInput
	}

	embResult, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return IngestResult{}, fmt.Errorf("vectorize document: %w", err)
	}

	if !domain.ValidVector(embResult.Embedding) {
		return IngestResult{}, fmt.Errorf(
			"provider returned empty vector: %w", domain.ErrEmbeddingGenerationFailed,
		)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	doc := &domain.Document{
		Text:      text,
		Embedding: embResult.Embedding,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return IngestResult{}, fmt.Errorf("insert document: %w: %w", err, domain.ErrPersistenceFailed)
	}

	return IngestResult{ID: id, EmbeddingLength: len(embResult.Embedding)}, nil
}

// Get retrieves a document by ID. Malformed identifiers are rejected
// before the store is queried.
func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Document{}, fmt.Errorf("parse id %q: %w", id, domain.ErrInvalidID)
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}
