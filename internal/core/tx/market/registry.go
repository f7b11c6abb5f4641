package market

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/hashicorp/golang-lru/v2"
)

// DefaultRegistryCacheSize is the number of names a Registry keeps resolved.
const DefaultRegistryCacheSize = 1024

// Source is the committed ledger state a Registry reads.
type Source interface {
	View(ctx context.Context, fn func(ledger.Accounts) error) error
	Records(ctx context.Context, t entry.Type, newRecord func() any, fn func(k keylet.Keylet, v any) bool) error
}

// Registry resolves market names. Names are never released, so a resolved
// name stays valid and is cached.
type Registry struct {
	source  Source
	program types.AccountID
	byName  *lru.Cache[string, types.AccountID]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRegistry creates a Registry for markets under program.
func NewRegistry(source Source, program types.AccountID, cacheSize int) (*Registry, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRegistryCacheSize
	}
	cache, err := lru.New[string, types.AccountID](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{source: source, program: program, byName: cache}, nil
}

// Lookup returns the market registered under name. A missing name yields an
// error matching both ErrMarketNotFound and tx.ErrNotFound.
func (r *Registry) Lookup(ctx context.Context, name string) (*Market, error) {
	var m *Market
	err := r.source.View(ctx, func(l ledger.Accounts) error {
		targetMint, ok := r.byName.Get(name)
		if ok {
			r.hits.Add(1)
		} else {
			r.misses.Add(1)
			a, err := LoadAttribution(l, r.program, name)
			if err != nil {
				return err
			}
			targetMint = a.TargetMint
		}
		loaded, _, err := LoadMarket(l, r.program, targetMint)
		if err != nil {
			return err
		}
		if !ok {
			r.byName.Add(name, targetMint)
		}
		m = loaded
		return nil
	})
	if errors.Is(err, ErrMarketNotFound) {
		return nil, tx.NewResultError(tx.TecNO_ENTRY, err)
	}
	return m, err
}

// List returns every market ordered by name.
func (r *Registry) List(ctx context.Context) ([]Market, error) {
	var markets []Market
	err := r.source.Records(ctx, entry.TypeMarket,
		func() any { return new(Market) },
		func(_ keylet.Keylet, v any) bool {
			markets = append(markets, *v.(*Market))
			return true
		})
	if err != nil {
		return nil, err
	}
	sort.Slice(markets, func(i, j int) bool { return markets[i].Name < markets[j].Name })
	return markets, nil
}

// Stats returns the name cache hit and miss counts.
func (r *Registry) Stats() (hits, misses uint64) {
	return r.hits.Load(), r.misses.Load()
}
