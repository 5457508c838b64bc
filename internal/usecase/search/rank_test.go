package search

import (
	"testing"

	"github.com/clovermead/semdex/internal/domain"
)

func TestRank_OrdersByScoreDescending(t *testing.T) {
	query := []float32{1, 0}
	docs := []domain.Document{
		{ID: "orthogonal", Embedding: []float32{0, 1}},
		{ID: "aligned", Embedding: []float32{1, 0}},
	}

	results := rank(query, docs)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "aligned" || results[0].Score != 1 {
		t.Errorf("top result = %s score %f, expected aligned with 1", results[0].ID, results[0].Score)
	}
	if results[1].ID != "orthogonal" || results[1].Score != 0 {
		t.Errorf("second result = %s score %f, expected orthogonal with 0", results[1].ID, results[1].Score)
	}
}

func TestRank_InvalidEmbeddingWarns(t *testing.T) {
	query := []float32{1, 0}
	docs := []domain.Document{
		{ID: "empty", Embedding: []float32{}},
		{ID: "missing", Embedding: nil},
	}

	results := rank(query, docs)

	for _, r := range results {
		if r.Score != 0 {
			t.Errorf("%s: score = %f, expected 0", r.ID, r.Score)
		}
		if r.Warning != WarnInvalidEmbedding {
			t.Errorf("%s: warning = %q, expected %q", r.ID, r.Warning, WarnInvalidEmbedding)
		}
	}
}

func TestRank_DimensionMismatchWarns(t *testing.T) {
	query := []float32{1, 0, 0, 0, 0} // 5 dimensions
	docs := []domain.Document{
		{ID: "short", Embedding: []float32{1, 2, 3}}, // 3 dimensions
	}

	results := rank(query, docs)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 0 {
		t.Errorf("score = %f, expected 0", results[0].Score)
	}
	if results[0].Warning != WarnDimensionMismatch {
		t.Errorf("warning = %q, expected %q", results[0].Warning, WarnDimensionMismatch)
	}
}

func TestRank_MixedAnomaliesDoNotAbort(t *testing.T) {
	query := []float32{1, 0}
	docs := []domain.Document{
		{ID: "good", Embedding: []float32{0.5, 0.5}},
		{ID: "bad", Embedding: nil},
		{ID: "mismatched", Embedding: []float32{1, 2, 3}},
	}

	results := rank(query, docs)

	if len(results) != 3 {
		t.Fatalf("expected all 3 documents in results, got %d", len(results))
	}
	if results[0].ID != "good" {
		t.Errorf("top result = %s, expected good", results[0].ID)
	}
}

func TestRank_TiesKeepFetchOrder(t *testing.T) {
	query := []float32{1, 0}
	docs := []domain.Document{
		{ID: "first", Embedding: []float32{0, 1}},
		{ID: "second", Embedding: []float32{0, -1}},
		{ID: "third", Embedding: []float32{0, 2}},
	}

	results := rank(query, docs)

	// All score 0 -- stable sort preserves input order.
	for i, want := range []string{"first", "second", "third"} {
		if results[i].ID != want {
			t.Errorf("results[%d] = %s, expected %s", i, results[i].ID, want)
		}
	}
}

func TestRank_DefaultsMetadata(t *testing.T) {
	results := rank([]float32{1}, []domain.Document{{ID: "x", Embedding: []float32{1}}})

	if results[0].Metadata == nil {
		t.Error("expected non-nil metadata map")
	}
}

func TestPaginate_Slices(t *testing.T) {
	results := []ScoredResult{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	page := paginate(results, 1, 1)

	if len(page.Results) != 1 || page.Results[0].ID != "a" {
		t.Errorf("unexpected page: %+v", page.Results)
	}
	if page.Pagination.Total != 3 || page.Pagination.Pages != 3 {
		t.Errorf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestPaginate_OutOfRangePageIsEmpty(t *testing.T) {
	results := make([]ScoredResult, 5)

	page := paginate(results, 3, 10)

	if len(page.Results) != 0 {
		t.Errorf("expected empty page, got %d results", len(page.Results))
	}
	if page.Pagination.Pages != 1 {
		t.Errorf("pages = %d, expected 1", page.Pagination.Pages)
	}
	if page.Pagination.Total != 5 {
		t.Errorf("total = %d, expected 5", page.Pagination.Total)
	}
}

func TestPaginate_PageSizesSumToTotal(t *testing.T) {
	results := make([]ScoredResult, 23)
	limit := 7

	pages := paginate(results, 1, limit).Pagination.Pages
	if pages != 4 {
		t.Fatalf("pages = %d, expected 4", pages)
	}

	sum := 0
	for p := 1; p <= pages; p++ {
		sum += len(paginate(results, p, limit).Results)
	}
	if sum != len(results) {
		t.Errorf("page sizes sum to %d, expected %d", sum, len(results))
	}
}

func TestPaginate_EmptySet(t *testing.T) {
	page := paginate(nil, 1, 10)

	if len(page.Results) != 0 {
		t.Errorf("expected empty results")
	}
	if page.Pagination.Pages != 0 || page.Pagination.Total != 0 {
		t.Errorf("unexpected pagination: %+v", page.Pagination)
	}
}
