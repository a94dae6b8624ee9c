// Package transaction coordinates request-scoped units of work.
//
// A Coordinator opens one unit of work per call, publishes it into the
// context handed to the wrapped function, commits or rolls back depending on
// the outcome, and releases the underlying connection exactly once.
// Repositories discover the active unit of work through FromContext and fall
// back to the gateway's default pool when none is present.
package transaction

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork is one connection with an open transaction.
type UnitOfWork interface {
	// DB returns the handle bound to the transaction.
	DB() *gorm.DB
	Commit() error
	Rollback() error
	// Release hands the connection back to the pool.
	Release() error
}

// Gateway gives access to the default pooled handle and starts new units of work.
type Gateway interface {
	Default() *gorm.DB
	Begin(ctx context.Context) (UnitOfWork, error)
}

type scopeKey struct{}

// scope is the per-call state published into the context.
type scope struct {
	uow         UnitOfWork
	afterCommit []func()
}

// FromContext returns the unit of work active for ctx, if any.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok || s == nil {
		return nil, false
	}
	return s.uow, true
}

// AfterCommit schedules fn to run once the active unit of work has committed.
// Hooks are dropped on rollback. Without an active unit of work fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok || s == nil {
		fn()
		return
	}
	s.afterCommit = append(s.afterCommit, fn)
}
