package domain

// ValidVector reports whether a vector is usable for scoring:
// present and at least one dimension.
func ValidVector(v []float32) bool {
	return len(v) > 0
}

// Compatible reports whether two vectors can be compared directly.
// A mismatch is a per-document condition, never a request-level error.
func Compatible(a, b []float32) bool {
	return len(a) == len(b)
}
