package service

import (
	"errors"

	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/store"
)

// mapStoreError converts store sentinels into domain errors carrying msg.
// Other errors pass through unchanged.
func mapStoreError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(msg).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(msg).WithCause(err)
	default:
		return err
	}
}
