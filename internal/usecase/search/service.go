// Package search implements brute-force semantic retrieval: every stored
// document is scored against the query embedding per request, with no index.
package search

import (
	"context"
	"fmt"

	"github.com/clovermead/semdex/internal/domain"
)

// Service handles semantic search over the full document set.
type Service struct {
	repo         Repository
	embed        Embedder
	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{
		repo:         repo,
		embed:        embed,
		defaultLimit: 10,
		maxLimit:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search embeds the query, scores it against a fresh snapshot of the full
// document set, and returns one page of ranked results. Absent or
// non-positive page and limit fall back to page 1 and the default limit.
func (s *Service) Search(ctx context.Context, query string, page, limit int) (ResultPage, error) {
	if query == "" {
		return ResultPage{}, domain.ErrMissingInput
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return ResultPage{}, fmt.Errorf("vectorize query: %w: %w", err, domain.ErrQueryEmbeddingFailed)
	}
	if !domain.ValidVector(embResult.Embedding) {
		return ResultPage{}, fmt.Errorf("empty query embedding: %w", domain.ErrQueryEmbeddingFailed)
	}

	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return ResultPage{}, fmt.Errorf("fetch documents: %w: %w", err, domain.ErrStoreUnavailable)
	}

	return paginate(rank(embResult.Embedding, docs), page, limit), nil
}
