package repo

import (
	"errors"

	"github.com/rogerio-castellano/stocksync/internal/models"
)

// MapError translates a store error into the error taxonomy callers see:
// unknown ids become NotFoundError, a missing tenant a ValidationError and
// anything else a StorageError.
func MapError(op, collection, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDocumentNotFound):
		return models.NewNotFoundError(collection, id)
	case errors.Is(err, ErrMissingTenant):
		return models.NewValidationError("tenant", "tenant is required")
	default:
		return models.NewStorageError(op+" "+collection, err)
	}
}
