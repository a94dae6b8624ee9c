package transaction

import (
	"context"

	"github.com/boardhub/board-api/internal/logger"
)

// Coordinator runs functions inside their own unit of work.
// A single Coordinator is safe for concurrent use; it holds no per-call state.
type Coordinator struct {
	gateway Gateway
}

func NewCoordinator(gateway Gateway) *Coordinator {
	return &Coordinator{gateway: gateway}
}

// Run begins a unit of work, calls fn with a context carrying it, and then
// commits when fn returns nil or rolls back otherwise. The error returned by
// fn is passed through unchanged. Failing to begin is returned as-is and fn is
// never called. The connection is released exactly once on every path,
// including commit failure and panics raised by fn.
func (c *Coordinator) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	uow, err := c.gateway.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := uow.Release(); relErr != nil {
			logger.Warningf("release unit of work: %v", relErr)
		}
	}()

	s := &scope{uow: uow}
	txCtx := context.WithValue(ctx, scopeKey{}, s)

	finished := false
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			rollback(uow)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		rollback(uow)
		return err
	}

	err = uow.Commit()
	finished = true
	if err != nil {
		return err
	}

	for _, hook := range s.afterCommit {
		hook()
	}
	return nil
}

func rollback(uow UnitOfWork) {
	if err := uow.Rollback(); err != nil {
		logger.Errorf("rollback unit of work: %v", err)
	}
}
