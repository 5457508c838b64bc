package document

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"time"

	"github.com/clovermead/semdex/internal/domain"
)

const (
	fieldText      = "text"
	fieldVector    = "vector"
	fieldMetadata  = "metadata"
	fieldCreatedAt = "created_at"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domain.Document) (map[string]string, error) {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		fieldText:      doc.Text,
		fieldVector:    vectorToBytes(doc.Embedding),
		fieldMetadata:  string(meta),
		fieldCreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// parseHashFields converts a flat hash map back into a domain Document.
// Unparseable vectors and metadata degrade to nil/empty rather than failing:
// a historical document with a corrupt embedding still surfaces in search
// results (zero-scored, with a warning) instead of breaking the whole scan.
func parseHashFields(id string, m map[string]string) domain.Document {
	doc := domain.Document{
		ID:       id,
		Text:     m[fieldText],
		Metadata: map[string]any{},
	}

	doc.Embedding = bytesToVector(m[fieldVector])

	if raw := m[fieldMetadata]; raw != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(raw), &meta); err == nil && meta != nil {
			doc.Metadata = meta
		}
	}

	if ts := m[fieldCreatedAt]; ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			doc.CreatedAt = t
		}
	}

	return doc
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
// Returns nil for empty or misaligned input.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
