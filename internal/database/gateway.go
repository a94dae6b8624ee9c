package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/boardhub/board-api/internal/transaction"

	"gorm.io/gorm"
)

// ErrReleased is returned when a unit of work is used after Release.
var ErrReleased = errors.New("unit of work already released")

// Gateway is the GORM implementation of transaction.Gateway.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Default returns the pooled handle used outside coordinated transactions.
func (g *Gateway) Default() *gorm.DB {
	return g.db
}

// Begin reserves a connection from the pool and starts a transaction on it.
func (g *Gateway) Begin(ctx context.Context) (transaction.UnitOfWork, error) {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &unitOfWork{tx: tx}, nil
}

// unitOfWork wraps a *gorm.DB transaction. The connection returns to the pool
// when the transaction ends, so Release rolls back anything left open.
type unitOfWork struct {
	mu       sync.Mutex
	tx       *gorm.DB
	finished bool
	released bool
}

func (u *unitOfWork) DB() *gorm.DB {
	return u.tx
}

func (u *unitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.released {
		return ErrReleased
	}
	u.finished = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.released {
		return ErrReleased
	}
	u.finished = true
	if err := u.tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Release() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.released {
		return nil
	}
	u.released = true
	if !u.finished {
		u.finished = true
		if err := u.tx.Rollback().Error; err != nil {
			return fmt.Errorf("failed to release connection: %w", err)
		}
	}
	return nil
}
