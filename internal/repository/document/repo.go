// Package document persists documents as store hashes keyed by UUID.
package document

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/clovermead/semdex/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "doc:"

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the document store contracts of the usecase layer.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert persists a new document, assigning a store-generated UUID.
func (r *Repo) Insert(ctx context.Context, doc *domain.Document) (string, error) {
	id := uuid.NewString()

	fields, err := buildHashFields(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	if err := r.store.HSet(ctx, docKey(id), fields); err != nil {
		return "", fmt.Errorf("hset %s: %w", docKey(id), err)
	}

	doc.ID = id
	return id, nil
}

// FindAll returns the full document set in deterministic (key-sorted) order.
// Retrieval ranks a freshly fetched snapshot per request, so a stable fetch
// order is what makes equal-score ties reproducible across runs.
func (r *Repo) FindAll(ctx context.Context) ([]domain.Document, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	// SCAN order is not stable between calls.
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			// Key expired or deleted between SCAN and HGETALL.
			continue
		}
		docs = append(docs, parseHashFields(docID(keys[i]), m))
	}
	return docs, nil
}

// FindByID returns a document by its identifier.
func (r *Repo) FindByID(ctx context.Context, id string) (domain.Document, error) {
	m, err := r.store.HGetAll(ctx, docKey(id))
	if err != nil {
		return domain.Document{}, fmt.Errorf("hgetall %s: %w", docKey(id), err)
	}
	if len(m) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return parseHashFields(id, m), nil
}

func docKey(id string) string {
	return keyPrefix + id
}

func docID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
