package document

import (
	"context"
	"errors"
	"testing"

	"github.com/clovermead/semdex/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	insertID  string
	insertErr error
	inserted  *domain.Document
	findDoc   domain.Document
	findErr   error
	findID    string
}

func (m *mockRepo) Insert(_ context.Context, doc *domain.Document) (string, error) {
	m.inserted = doc
	if m.insertErr != nil {
		return "", m.insertErr
	}
	return m.insertID, nil
}

func (m *mockRepo) FindByID(_ context.Context, id string) (domain.Document, error) {
	m.findID = id
	return m.findDoc, m.findErr
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// --- Tests ---

func TestIngest_Success(t *testing.T) {
	repo := &mockRepo{insertID: "doc-123"}
	embed := &mockEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	svc := New(repo, embed)

	result, err := svc.Ingest(context.Background(), "hello world", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID != "doc-123" {
		t.Errorf("id = %q, expected doc-123", result.ID)
	}
	if result.EmbeddingLength != 3 {
		t.Errorf("embedding length = %d, expected 3", result.EmbeddingLength)
	}
	if repo.inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if repo.inserted.Text != "hello world" {
		t.Errorf("stored text = %q", repo.inserted.Text)
	}
	if repo.inserted.Metadata == nil || len(repo.inserted.Metadata) != 0 {
		t.Errorf("expected empty metadata default, got %v", repo.inserted.Metadata)
	}
	if repo.inserted.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestIngest_KeepsMetadata(t *testing.T) {
	repo := &mockRepo{insertID: "x"}
	embed := &mockEmbedder{vec: []float32{1}}
	svc := New(repo, embed)

	meta := map[string]any{"source": "wiki", "rank": 3.0}
	if _, err := svc.Ingest(context.Background(), "text", meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.inserted.Metadata["source"] != "wiki" {
		t.Errorf("metadata not preserved: %v", repo.inserted.Metadata)
	}
}

func TestIngest_MissingText(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{vec: []float32{1}}
	svc := New(repo, embed)

	_, err := svc.Ingest(context.Background(), "", nil)
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if embed.called {
		t.Error("embedder should not be called for empty text")
	}
}

func TestIngest_ProviderError(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{err: domain.ErrEmbeddingUnavailable}
	svc := New(repo, embed)

	_, err := svc.Ingest(context.Background(), "text", nil)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if repo.inserted != nil {
		t.Error("nothing should be persisted when embedding fails")
	}
}

func TestIngest_BadShapeError(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{err: domain.ErrInvalidEmbeddingShape}
	svc := New(repo, embed)

	_, err := svc.Ingest(context.Background(), "text", nil)
	if !errors.Is(err, domain.ErrInvalidEmbeddingShape) {
		t.Fatalf("expected ErrInvalidEmbeddingShape, got %v", err)
	}
}

func TestIngest_EmptyVector(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{vec: []float32{}}
	svc := New(repo, embed)

	_, err := svc.Ingest(context.Background(), "text", nil)
	if !errors.Is(err, domain.ErrEmbeddingGenerationFailed) {
		t.Fatalf("expected ErrEmbeddingGenerationFailed, got %v", err)
	}
}

func TestIngest_PersistenceError(t *testing.T) {
	repo := &mockRepo{insertErr: errors.New("write refused")}
	embed := &mockEmbedder{vec: []float32{1}}
	svc := New(repo, embed)

	_, err := svc.Ingest(context.Background(), "text", nil)
	if !errors.Is(err, domain.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	want := domain.Document{ID: "2f9d6a3e-8a44-4f10-9c3b-0d8b2f6e1a55", Text: "stored"}
	repo := &mockRepo{findDoc: want}
	svc := New(repo, &mockEmbedder{})

	doc, err := svc.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "stored" {
		t.Errorf("text = %q", doc.Text)
	}
	if repo.findID != want.ID {
		t.Errorf("queried id = %q", repo.findID)
	}
}

func TestGet_InvalidID(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockEmbedder{})

	_, err := svc.Get(context.Background(), "not-a-uuid")
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if repo.findID != "" {
		t.Error("store should not be queried for malformed ids")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepo{findErr: domain.ErrDocumentNotFound}
	svc := New(repo, &mockEmbedder{})

	_, err := svc.Get(context.Background(), "2f9d6a3e-8a44-4f10-9c3b-0d8b2f6e1a55")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
