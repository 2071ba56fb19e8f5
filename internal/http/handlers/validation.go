package handlers

import (
	"errors"

	"github.com/rogerio-castellano/stocksync/internal/models"
)

type FieldValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validationErrors(err error) []FieldValidationError {
	errs := []FieldValidationError{}

	var list models.ValidationErrors
	if errors.As(err, &list) {
		for _, e := range list {
			errs = append(errs, FieldValidationError{Field: e.Field, Description: e.Description})
		}
		return errs
	}

	var single *models.ValidationError
	if errors.As(err, &single) {
		errs = append(errs, FieldValidationError{Field: single.Field, Description: single.Description})
		return errs
	}
	return append(errs, FieldValidationError{Description: err.Error()})
}
