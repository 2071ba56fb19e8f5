package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/models"
	"go.uber.org/zap"
)

// tenantOf returns the subject of the authenticated caller.
func tenantOf(r *http.Request) string {
	return auth.SubjectFrom(r.Context())
}

const maxBodyBytes = 1 << 20

// readJSON decodes exactly one JSON value from a body of at most one megabyte.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must have only a single json value")
	}
	return nil
}

// respond writes data as a JSON response with the given status.
func respond(w http.ResponseWriter, status int, data any) {
	out, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("failed to encode JSON response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		zap.L().Warn("failed to write JSON response", zap.Error(err))
	}
}

// writeError maps core errors to responses: field errors are 400 with the
// list of fields, a missing record is 404, anything else is 500.
func writeError(w http.ResponseWriter, err error, failure string) {
	var notFound *models.NotFoundError
	switch {
	case errors.Is(err, models.ErrValidation):
		respond(w, http.StatusBadRequest, validationErrors(err))
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	default:
		zap.L().Error(failure, zap.Error(err))
		http.Error(w, failure, http.StatusInternalServerError)
	}
}
