package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/pkg/apperr"
)

const uniqueViolation = "23505"

// ClassifyError tags a driver error with the matching apperr kind while
// keeping the original error in the chain. Errors that already carry a
// kind are returned untouched.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		apperr.ErrNotFound, apperr.ErrConnection, apperr.ErrQuery, apperr.ErrConflict,
		apperr.ErrInvalidState, apperr.ErrValidation, apperr.ErrUnauthorized, apperr.ErrInsufficientStock,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", apperr.ErrConnection, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", apperr.ErrConnection, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "08":
			return fmt.Errorf("%w: %w", apperr.ErrConnection, err)
		case pqErr.Code == uniqueViolation:
			return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
	}

	return fmt.Errorf("%w: %w", apperr.ErrQuery, err)
}
