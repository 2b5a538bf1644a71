package memtx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

func TestManager_RollbackInReverseOrder(t *testing.T) {
	m := NewManager()
	var order []int

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		OnRollback(ctx, func() { order = append(order, 1) })
		OnRollback(ctx, func() { order = append(order, 2) })
		OnCommit(ctx, func() { order = append(order, 100) })
		return errors.New("exhausted")
	})

	assert.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
}

func TestManager_CommitAndFinish(t *testing.T) {
	m := NewManager()
	var events []string

	err := m.Do(context.Background(), func(ctx context.Context) error {
		OnRollback(ctx, func() { events = append(events, "undo") })
		OnCommit(ctx, func() { events = append(events, "commit") })
		OnFinish(ctx, func() { events = append(events, "unlock") })
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"commit", "unlock"}, events)
}

func TestManager_NestedJoinsOuter(t *testing.T) {
	m := NewManager()
	undone := false

	_ = m.Do(context.Background(), func(ctx context.Context) error {
		_ = m.Do(ctx, func(inner context.Context) error {
			OnRollback(inner, func() { undone = true })
			return nil
		})
		assert.False(t, undone)
		return errors.New("outer failed")
	})

	assert.True(t, undone)
}

func TestHooksOutsideTransaction(t *testing.T) {
	applied, released, undone := false, false, false
	ctx := context.Background()

	OnCommit(ctx, func() { applied = true })
	OnFinish(ctx, func() { released = true })
	OnRollback(ctx, func() { undone = true })

	assert.True(t, applied)
	assert.True(t, released)
	assert.False(t, undone)
	assert.False(t, InTransaction(ctx))
}

func TestManager_RollbackOnPanic(t *testing.T) {
	m := NewManager()
	undone := false

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			OnRollback(ctx, func() { undone = true })
			panic("boom")
		})
	})
	assert.True(t, undone)
}

func TestAcquire_ReentrantWithinTransaction(t *testing.T) {
	m := NewManager()
	locks := keylock.New()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		Acquire(ctx, locks, "pool:a")()
		Acquire(ctx, locks, "pool:a")()
		Acquire(ctx, locks, "pool:b")()
		assert.Equal(t, 2, locks.Len())
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, locks.Len())
}

func TestAcquire_OutsideTransaction(t *testing.T) {
	locks := keylock.New()

	unlock := Acquire(context.Background(), locks, "request:1")
	assert.Equal(t, 1, locks.Len())
	unlock()
	assert.Equal(t, 0, locks.Len())
}

func TestManager_ReadOnlyBlocksWriters(t *testing.T) {
	m := NewManager()
	entered := make(chan struct{})
	release := make(chan struct{})
	var written atomic.Bool

	readDone := make(chan error, 1)
	go func() {
		readDone <- m.DoReadOnly(context.Background(), func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	go func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			written.Store(true)
			return nil
		})
	}()

	assert.Never(t, written.Load, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	assert.NoError(t, <-readDone)
	assert.Eventually(t, written.Load, time.Second, 5*time.Millisecond)
}

func TestManager_WritersRunConcurrently(t *testing.T) {
	m := NewManager()
	first := make(chan struct{})
	second := make(chan struct{})

	go func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			close(first)
			<-second
			return nil
		})
	}()
	<-first

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		close(second)
		return nil
	})
	assert.NoError(t, err)
}

func TestManager_ReadOnlyNestedInWrite(t *testing.T) {
	m := NewManager()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoReadOnly(ctx, func(inner context.Context) error {
			assert.True(t, InTransaction(inner))
			return nil
		})
	})

	assert.NoError(t, err)
}
