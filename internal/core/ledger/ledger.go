// Package ledger is the token ledger the market program runs against: mints,
// token accounts, program-owned records, and an atomic unit-of-work API.
package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"go.uber.org/zap"
)

// Service serializes units of work against a Store.
//
// Writers are fully serialized, so two transactions never observe each
// other's partial state. Readers share the lock and always see committed
// state.
type Service struct {
	mu    sync.RWMutex
	store *Store
	log   *zap.Logger
}

// NewService creates a ledger service over db. A nil logger disables logging.
func NewService(db database.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: NewStore(db),
		log:   log.Named("ledger"),
	}
}

// Store returns the committed state.
func (s *Service) Store() *Store {
	return s.store
}

// Transact runs fn in a sandbox. If fn returns nil every change is
// committed in one batch and the affected entries are returned; otherwise
// nothing is written and fn's error is returned.
func (s *Service) Transact(ctx context.Context, fn func(Accounts) error) ([]AffectedNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := NewApplyStateTable(ctx, s.store)
	if err := fn(&sandbox{table: table}); err != nil {
		s.log.Debug("unit of work discarded", zap.Error(err))
		return nil, err
	}

	nodes, err := table.Apply()
	if err != nil {
		s.log.Error("ledger commit failed", zap.Error(err))
		return nil, err
	}
	s.log.Debug("unit of work committed", zap.Int("affected", len(nodes)))
	return nodes, nil
}

// View runs fn against committed state. Writes fail with ErrReadOnly.
func (s *Service) View(ctx context.Context, fn func(Accounts) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&sandbox{table: NewApplyStateTable(ctx, s.store), readOnly: true})
}

// Records decodes every committed program record of type t, in key order.
// newRecord returns a fresh value to decode into; fn returns false to stop.
func (s *Service) Records(ctx context.Context, t entry.Type, newRecord func() any, fn func(k keylet.Keylet, v any) bool) error {
	if !t.IsProgramOwned() {
		return errors.New("ledger: records are only listed for program-owned types")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var decodeErr error
	err := s.store.ForEach(ctx, t, func(k keylet.Keylet, data []byte) bool {
		v := newRecord()
		if decodeErr = DecodeEntry(data, t, v); decodeErr != nil {
			return false
		}
		return fn(k, v)
	})
	if decodeErr != nil {
		return decodeErr
	}
	return err
}
