package transaction_test

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/transaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUnitOfWork struct {
	commitErr   error
	rollbackErr error

	commits   int32
	rollbacks int32
	releases  int32
	events    []string
	mu        sync.Mutex
}

func (u *fakeUnitOfWork) record(e string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = append(u.events, e)
}

func (u *fakeUnitOfWork) DB() *gorm.DB { return nil }

func (u *fakeUnitOfWork) Commit() error {
	atomic.AddInt32(&u.commits, 1)
	u.record("commit")
	return u.commitErr
}

func (u *fakeUnitOfWork) Rollback() error {
	atomic.AddInt32(&u.rollbacks, 1)
	u.record("rollback")
	return u.rollbackErr
}

func (u *fakeUnitOfWork) Release() error {
	atomic.AddInt32(&u.releases, 1)
	u.record("release")
	return nil
}

type fakeGateway struct {
	beginErr error
	mu       sync.Mutex
	units    []*fakeUnitOfWork
	newUnit  func() *fakeUnitOfWork
}

func (g *fakeGateway) Default() *gorm.DB { return nil }

func (g *fakeGateway) Begin(ctx context.Context) (transaction.UnitOfWork, error) {
	if g.beginErr != nil {
		return nil, g.beginErr
	}
	u := &fakeUnitOfWork{}
	if g.newUnit != nil {
		u = g.newUnit()
	}
	g.mu.Lock()
	g.units = append(g.units, u)
	g.mu.Unlock()
	return u, nil
}

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestCoordinator_CommitsOnSuccess(t *testing.T) {
	gw := &fakeGateway{}
	c := transaction.NewCoordinator(gw)

	var seen transaction.UnitOfWork
	err := c.Run(context.Background(), func(ctx context.Context) error {
		uow, ok := transaction.FromContext(ctx)
		require.True(t, ok)
		seen = uow
		return nil
	})

	require.NoError(t, err)
	require.Len(t, gw.units, 1)
	u := gw.units[0]
	assert.Same(t, u, seen)
	assert.Equal(t, []string{"commit", "release"}, u.events)
}

func TestCoordinator_RollsBackAndReturnsOriginalError(t *testing.T) {
	gw := &fakeGateway{newUnit: func() *fakeUnitOfWork {
		return &fakeUnitOfWork{rollbackErr: errors.New("rollback broke")}
	}}
	c := transaction.NewCoordinator(gw)
	original := apperror.NewNotFound("board not found")

	err := c.Run(context.Background(), func(ctx context.Context) error {
		return original
	})

	assert.Same(t, original, err)
	u := gw.units[0]
	assert.Equal(t, []string{"rollback", "release"}, u.events)
	assert.EqualValues(t, 0, u.commits)
}

func TestCoordinator_ReleasesWhenCommitFails(t *testing.T) {
	commitErr := errors.New("commit failed")
	gw := &fakeGateway{newUnit: func() *fakeUnitOfWork {
		return &fakeUnitOfWork{commitErr: commitErr}
	}}
	c := transaction.NewCoordinator(gw)

	hookRan := false
	err := c.Run(context.Background(), func(ctx context.Context) error {
		transaction.AfterCommit(ctx, func() { hookRan = true })
		return nil
	})

	assert.ErrorIs(t, err, commitErr)
	assert.False(t, hookRan)
	assert.EqualValues(t, 1, gw.units[0].releases)
	assert.EqualValues(t, 0, gw.units[0].rollbacks)
}

func TestCoordinator_RollsBackAndReleasesOnPanic(t *testing.T) {
	gw := &fakeGateway{}
	c := transaction.NewCoordinator(gw)

	assert.PanicsWithValue(t, "boom", func() {
		_ = c.Run(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, []string{"rollback", "release"}, gw.units[0].events)
}

func TestCoordinator_BeginFailureSkipsHandler(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	c := transaction.NewCoordinator(&fakeGateway{beginErr: beginErr})

	called := false
	err := c.Run(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}

func TestCoordinator_AfterCommitHooksRunInOrderOnlyAfterCommit(t *testing.T) {
	gw := &fakeGateway{}
	c := transaction.NewCoordinator(gw)

	var order []string
	err := c.Run(context.Background(), func(ctx context.Context) error {
		transaction.AfterCommit(ctx, func() { order = append(order, "first") })
		transaction.AfterCommit(ctx, func() { order = append(order, "second") })
		assert.Empty(t, order)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	err = c.Run(context.Background(), func(ctx context.Context) error {
		transaction.AfterCommit(ctx, func() { order = append(order, "dropped") })
		return errors.New("fail")
	})
	assert.Error(t, err)
	assert.Empty(t, order)
}

func TestAfterCommit_WithoutUnitOfWorkRunsImmediately(t *testing.T) {
	ran := false
	transaction.AfterCommit(context.Background(), func() { ran = true })
	assert.True(t, ran)

	_, ok := transaction.FromContext(context.Background())
	assert.False(t, ok)
}

func TestCoordinator_ConcurrentRunsAreIsolated(t *testing.T) {
	gw := &fakeGateway{}
	c := transaction.NewCoordinator(gw)

	const n = 50
	var wg sync.WaitGroup
	seen := make([]transaction.UnitOfWork, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Run(context.Background(), func(ctx context.Context) error {
				uow, _ := transaction.FromContext(ctx)
				seen[i] = uow
				if i%2 == 0 {
					return errors.New("even fails")
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	require.Len(t, gw.units, n)
	distinct := map[transaction.UnitOfWork]bool{}
	for _, u := range seen {
		distinct[u] = true
	}
	assert.Len(t, distinct, n)
	for _, u := range gw.units {
		assert.EqualValues(t, 1, u.releases)
		assert.EqualValues(t, 1, u.commits+u.rollbacks)
	}
}
