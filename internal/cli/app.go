package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/config"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	_ "github.com/LeJamon/goBondedMarkets/internal/core/tx/all"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	_ "github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb/postgres"
	_ "github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb/sqlite"
	"go.uber.org/zap"
)

// app is everything a command needs, opened from the loaded configuration.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	dbs      database.Manager
	ledger   *ledger.Service
	engine   *tx.Engine
	registry *market.Registry

	// nil when history is disabled
	history *relationaldb.Manager
}

func openApp(ctx context.Context, c *config.Config, log *zap.Logger) (*app, error) {
	db, dbs, err := storage.Open(c.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger storage: %w", err)
	}
	a := &app{cfg: c, log: log, dbs: dbs}
	a.ledger = ledger.NewService(db, log)

	opts := []tx.Option{tx.WithLogger(log)}
	if c.HistoryEnabled() {
		a.history, err = relationaldb.NewManager(c.RelationalConfig(),
			relationaldb.WithLogger(log), relationaldb.WithHealthCheckInterval(0))
		if err == nil {
			err = a.history.Open(ctx)
		}
		if err != nil {
			dbs.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		opts = append(opts, tx.WithRecorder(historyRecorder(a.history.Database())))
	}

	engineConfig := c.EngineConfig()
	a.engine = tx.NewEngine(a.ledger, engineConfig, opts...)
	a.registry, err = market.NewRegistry(a.ledger, engineConfig.Program, c.Cache.AttributionEntries)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	log.Debug("ledger opened",
		zap.String("backend", c.Storage.Backend),
		zap.String("path", c.Storage.Path),
		zap.Stringer("program", engineConfig.Program),
		zap.Bool("history", c.HistoryEnabled()))
	return a, nil
}

// Close releases the history and ledger databases.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if a.history != nil {
		errs = append(errs, a.history.Close(ctx))
	}
	errs = append(errs, a.dbs.Close())
	return errors.Join(errs...)
}

// requireHistory returns the history database or an error naming the
// missing configuration.
func (a *app) requireHistory() (relationaldb.Database, error) {
	if a.history == nil {
		return nil, errors.New("history is disabled; set history.driver")
	}
	return a.history.Database(), nil
}

// historyRecorder stores committed receipts as trades.
func historyRecorder(db relationaldb.Database) tx.Recorder {
	return tx.RecorderFunc(func(ctx context.Context, receipts []tx.Receipt) error {
		trades := make([]relationaldb.Trade, len(receipts))
		for i, r := range receipts {
			trades[i] = tradeFromReceipt(r)
		}
		return db.InsertTrades(ctx, trades)
	})
}

func tradeFromReceipt(r tx.Receipt) relationaldb.Trade {
	return relationaldb.Trade{
		ID:           r.ID.String(),
		Kind:         r.Type.String(),
		Account:      r.Account,
		Market:       r.Market,
		Name:         r.Name,
		Amount:       r.Amount,
		Settlement:   r.Settlement,
		CurveSupply:  r.CurveSupply,
		AmountBurned: r.AmountBurned,
		Time:         r.Time,
	}
}

// withApp opens the app around fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(ctx); cerr != nil {
			logger.Warn("failed to close databases", zap.Error(cerr))
		}
	}()
	return fn(a)
}
