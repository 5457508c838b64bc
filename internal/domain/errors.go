package domain

import "errors"

var (
	// ErrMissingInput signals empty or absent input text.
	ErrMissingInput = errors.New("missing input text")
	// ErrInvalidID signals a malformed document identifier.
	ErrInvalidID = errors.New("invalid document id")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrInvalidEmbeddingShape signals an unrecognized embedding response shape.
	ErrInvalidEmbeddingShape = errors.New("invalid embedding response shape")
	// ErrEmbeddingGenerationFailed signals that the provider returned an unusable vector.
	ErrEmbeddingGenerationFailed = errors.New("embedding generation failed")
	// ErrQueryEmbeddingFailed signals that the search query could not be vectorized.
	ErrQueryEmbeddingFailed = errors.New("query embedding failed")
	// ErrPersistenceFailed signals a document store write failure.
	ErrPersistenceFailed = errors.New("document persistence failed")
	// ErrStoreUnavailable signals a document store read failure.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
