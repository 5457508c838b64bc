package domain

import "time"

// Document is a stored text with its embedding vector.
// Documents are created once at ingestion and never mutated.
type Document struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]any
	CreatedAt time.Time
}
