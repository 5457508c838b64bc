package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/clovermead/semdex/internal/domain"
)

// errorCode is a machine-readable error identifier in API responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeMissingInput           errorCode = "missing_input"
	codeInvalidID              errorCode = "invalid_id"
	codeDocumentNotFound       errorCode = "document_not_found"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeStoreUnavailable       errorCode = "store_unavailable"
	codeInternalError          errorCode = "internal_error"
)

// errorResponse is the JSON error payload.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingInput,
		domain.ErrInvalidID,
		domain.ErrDocumentNotFound,
		domain.ErrInvalidEmbeddingShape,
		domain.ErrEmbeddingUnavailable,
		domain.ErrEmbeddingGenerationFailed,
		domain.ErrQueryEmbeddingFailed,
		domain.ErrPersistenceFailed,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
