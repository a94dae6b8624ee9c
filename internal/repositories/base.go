package repositories

import (
	"context"
	"errors"

	"github.com/boardhub/board-api/internal/transaction"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no live row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// Base resolves the handle a repository call should run on.
type Base struct {
	gateway transaction.Gateway
}

func NewBase(gateway transaction.Gateway) Base {
	return Base{gateway: gateway}
}

// conn returns the handle of the unit of work active in ctx, or the default
// pool when the call is not part of a coordinated transaction.
func (b Base) conn(ctx context.Context) *gorm.DB {
	if uow, ok := transaction.FromContext(ctx); ok {
		return uow.DB().WithContext(ctx)
	}
	return b.gateway.Default().WithContext(ctx)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
