package service

import (
	"context"
	"errors"

	"insurtech/internal/applicant/models"
	dErrors "insurtech/pkg/domain-errors"
	"insurtech/pkg/platform/sentinel"
)

// translate maps store, workflow and ingestion errors to domain errors.
// Domain errors pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}

	var aerr *models.AttachmentError
	switch {
	case errors.As(err, &aerr):
		return dErrors.New(dErrors.CodeValidation, aerr.Message)
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "application not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInvalidState, "action not allowed in the current step")
	case errors.Is(err, sentinel.ErrPending):
		return dErrors.New(dErrors.CodeConflict, "an attachment is still loading")
	case errors.Is(err, sentinel.ErrCanceled):
		return dErrors.New(dErrors.CodeConflict, "upload superseded by a newer selection")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}
}
