// Package memory is the default store: process-local maps behind the same
// unit-of-work contract as the PostgreSQL adapter.
package memory

import (
	"context"
	"sync"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type Store struct {
	mu  sync.RWMutex
	seq int64

	rooms        map[uuid.UUID]roomRow
	reservations map[uuid.UUID]reservationRow
	consumptions map[uuid.UUID]consumptionRow
	charges      map[uuid.UUID]chargeRow
	payments     map[uuid.UUID]paymentRow
	tips         map[uuid.UUID]pricing.Money
}

func NewStore() *Store {
	return &Store{
		rooms:        make(map[uuid.UUID]roomRow),
		reservations: make(map[uuid.UUID]reservationRow),
		consumptions: make(map[uuid.UUID]consumptionRow),
		charges:      make(map[uuid.UUID]chargeRow),
		payments:     make(map[uuid.UUID]paymentRow),
		tips:         make(map[uuid.UUID]pricing.Money),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within holds the store's write lock for the duration of fn and undoes every
// write fn made when it fails.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &memTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	return fn(ctx, &memTx{store: u.store, readOnly: true})
}

type memTx struct {
	store    *Store
	readOnly bool
	undo     []func()
}

func (t *memTx) Rooms() shared.RoomRepository               { return &roomRepo{tx: t} }
func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{tx: t} }
func (t *memTx) Folios() shared.FolioRepository             { return &folioRepo{tx: t} }

// write registers how to revert a change before it is made.
func (t *memTx) write(undo func()) error {
	if t.readOnly {
		return errs.AssertionFailed("%v", errReadOnly)
	}
	t.undo = append(t.undo, undo)
	return nil
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// restoreKey puts back the previous value of key, or removes it if absent.
func restoreKey[K comparable, V any](m map[K]V, key K) func() {
	prev, existed := m[key]
	return func() {
		if existed {
			m[key] = prev
		} else {
			delete(m, key)
		}
	}
}
