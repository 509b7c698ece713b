package service

import (
	"context"
	"errors"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// storeErr translates common store failures into typed errors. notFoundMsg is
// used for missing rows; duplicate-key violations become conflicts (the unique
// index is the backstop for generated codes — callers resubmit, the core never
// retries silently).
func storeErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s", notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("duplicate value violates a unique constraint")
	default:
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return err
		}
		return apperr.Wrap(err, "store operation failed")
	}
}
