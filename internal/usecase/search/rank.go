package search

import (
	"sort"

	"github.com/clovermead/semdex/internal/domain"
)

// Per-document warnings attached to results that could not be scored.
const (
	WarnInvalidEmbedding  = "Invalid embedding"
	WarnDimensionMismatch = "Dimension mismatch"
)

// ScoredResult is one document scored against a query.
type ScoredResult struct {
	ID       string
	Text     string
	Metadata map[string]any
	Score    float64
	Warning  string
}

// Pagination summarizes how a result set was sliced.
type Pagination struct {
	Total int
	Page  int
	Limit int
	Pages int
}

// ResultPage is one page of ranked results plus its pagination summary.
type ResultPage struct {
	Results    []ScoredResult
	Pagination Pagination
}

// rank scores every document against the query vector and sorts by score
// descending. A document that cannot be scored (missing or empty embedding,
// or a dimensionality different from the query's) degrades to a zero-scored
// result with a warning instead of failing the request.
//
// The sort is stable, so equal scores keep the repository's fetch order.
func rank(query []float32, docs []domain.Document) []ScoredResult {
	results := make([]ScoredResult, 0, len(docs))

	for _, doc := range docs {
		r := ScoredResult{
			ID:       doc.ID,
			Text:     doc.Text,
			Metadata: doc.Metadata,
		}
		if r.Metadata == nil {
			r.Metadata = map[string]any{}
		}

		switch {
		case !domain.ValidVector(doc.Embedding):
			r.Warning = WarnInvalidEmbedding
		case !domain.Compatible(doc.Embedding, query):
			r.Warning = WarnDimensionMismatch
		default:
			r.Score = domain.CosineSimilarity(query, doc.Embedding)
		}

		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// paginate slices the sorted result set: skip = (page-1)*limit, clamped to
// the available length. An out-of-range page yields an empty slice, not an
// error. Pages = ceil(total/limit).
func paginate(results []ScoredResult, page, limit int) ResultPage {
	total := len(results)

	skip := (page - 1) * limit
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	return ResultPage{
		Results: results[skip:end],
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}
}
