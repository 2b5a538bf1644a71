// Package memtx журнальный менеджер транзакций для in-memory хранилища.
// Хранилище применяет изменения сразу и регистрирует компенсирующие действия,
// которые выполняются при откате в обратном порядке.
package memtx

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

type journalKey struct{}

type journal struct {
	mu       sync.Mutex
	held     map[string]struct{}
	rollback []func()
	commit   []func()
	finish   []func()
}

// Manager реализует тот же контракт, что и txmanager.TransactionManager.
// Пишущие транзакции идут параллельно (изоляция на блокировках ключей),
// DoReadOnly исключает их на всё время чтения: это снимок данных.
type Manager struct {
	gate sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn, false)
}

// DoSerializable в памяти изоляция обеспечивается блокировками хранилища, поэтому совпадает с Do
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn, false)
}

// DoReadOnly ждёт завершения начатых пишущих транзакций и не пускает новые до конца fn
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn, true)
}

func (m *Manager) run(ctx context.Context, fn func(ctx context.Context) error, exclusive bool) (err error) {
	// вложенный вызов уже под gate внешней транзакции
	if InTransaction(ctx) {
		return fn(ctx)
	}

	if exclusive {
		m.gate.Lock()
		defer m.gate.Unlock()
	} else {
		m.gate.RLock()
		defer m.gate.RUnlock()
	}

	j := &journal{}
	committed := false

	defer func() {
		p := recover()
		if p != nil || !committed {
			j.runRollback()
		}
		j.runFinish()
		if p != nil {
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		return err
	}

	committed = true
	j.runCommit()
	return nil
}

// InTransaction проверяет, есть ли журнал в контексте
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(journalKey{}).(*journal)
	return ok
}

// Acquire блокирует key до конца транзакции и возвращает no-op.
// Повторный захват того же ключа в той же транзакции не блокирует.
// Вне транзакции возвращает функцию разблокировки.
func Acquire(ctx context.Context, locks *keylock.KeyLock, key string) func() {
	j, ok := ctx.Value(journalKey{}).(*journal)
	if !ok {
		return locks.Lock(key)
	}

	j.mu.Lock()
	if _, held := j.held[key]; held {
		j.mu.Unlock()
		return func() {}
	}
	j.mu.Unlock()

	unlock := locks.Lock(key)

	j.mu.Lock()
	if j.held == nil {
		j.held = make(map[string]struct{})
	}
	j.held[key] = struct{}{}
	j.finish = append(j.finish, unlock)
	j.mu.Unlock()

	return func() {}
}

// OnRollback регистрирует компенсирующее действие. Вне транзакции ничего не делает.
func OnRollback(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.mu.Lock()
		j.rollback = append(j.rollback, undo)
		j.mu.Unlock()
	}
}

// OnCommit откладывает действие до фиксации. Вне транзакции выполняет его сразу.
func OnCommit(ctx context.Context, apply func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.mu.Lock()
		j.commit = append(j.commit, apply)
		j.mu.Unlock()
		return
	}
	apply()
}

// OnFinish выполняется после фиксации или отката (снятие блокировок). Вне транзакции выполняется сразу.
func OnFinish(ctx context.Context, release func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.mu.Lock()
		j.finish = append(j.finish, release)
		j.mu.Unlock()
		return
	}
	release()
}

func (j *journal) runRollback() {
	j.mu.Lock()
	undo := j.rollback
	j.rollback = nil
	j.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

func (j *journal) runCommit() {
	j.mu.Lock()
	apply := j.commit
	j.commit = nil
	j.mu.Unlock()

	for _, fn := range apply {
		fn()
	}
}

func (j *journal) runFinish() {
	j.mu.Lock()
	release := j.finish
	j.finish = nil
	j.mu.Unlock()

	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}
