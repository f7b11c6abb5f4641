package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	replayWorkers  int
	replayFailFast bool
)

// replayCmd applies a recorded sequence of transactions
var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Apply a JSON array of transactions",
	Long: `Replay applies every transaction in file, a JSON array of transaction
objects as accepted by the engine (TransactionType plus fields).

Transactions are grouped by market. Each market's transactions apply in file
order; different markets apply concurrently.

Example:
    bondedd replay ./fixtures/scenario.json --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, err := loadReplayFile(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			summary, err := replay(cmd.Context(), a.engine, txs, replayWorkers, replayFailFast, a.log)
			if err != nil {
				return err
			}
			summary.print(cmd)
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d transactions failed", summary.Failed, summary.Total)
			}
			return nil
		})
	},
}

func init() {
	replayCmd.Flags().IntVar(&replayWorkers, "workers", 4, "markets replayed concurrently")
	replayCmd.Flags().BoolVar(&replayFailFast, "fail-fast", false, "stop at the first failed transaction")
	rootCmd.AddCommand(replayCmd)
}

func loadReplayFile(path string) ([]tx.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	txs := make([]tx.Transaction, len(raw))
	for i, r := range raw {
		if txs[i], err = tx.FromJSON(r); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return txs, nil
}

// ReplaySummary counts replayed transactions by result.
type ReplaySummary struct {
	Total    int
	Failed   int
	Results  map[tx.Result]int
	Duration time.Duration
}

func (s *ReplaySummary) print(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	codes := make([]tx.Result, 0, len(s.Results))
	for r := range s.Results {
		codes = append(codes, r)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	fmt.Fprintf(out, "replayed %d transactions in %s\n", s.Total, s.Duration.Round(time.Millisecond))
	for _, r := range codes {
		fmt.Fprintf(out, "  %-22s %d\n", r, s.Results[r])
	}
}

// replay applies txs grouped by market, one goroutine per market stream.
// With failFast the first failure cancels every stream.
func replay(ctx context.Context, engine *tx.Engine, txs []tx.Transaction, workers int, failFast bool, log *zap.Logger) (*ReplaySummary, error) {
	start := time.Now()
	streams := groupByMarket(txs)

	var (
		mu      sync.Mutex
		summary = &ReplaySummary{Results: make(map[tx.Result]int)}
	)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, stream := range streams {
		g.Go(func() error {
			for _, t := range stream {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := engine.Apply(ctx, t)

				mu.Lock()
				summary.Total++
				summary.Results[res.Result]++
				if !res.Result.IsSuccess() {
					summary.Failed++
				}
				mu.Unlock()

				if err := res.Err(); err != nil {
					log.Info("replayed transaction failed",
						zap.Stringer("tx", t.TxType()),
						zap.Stringer("account", t.GetCommon().Account),
						zap.Error(err))
					if failFast {
						return err
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()
	summary.Duration = time.Since(start)
	return summary, err
}

// groupByMarket splits txs into per-market streams, preserving order within
// each stream and ordering streams by first appearance.
func groupByMarket(txs []tx.Transaction) [][]tx.Transaction {
	index := make(map[types.AccountID]int)
	var streams [][]tx.Transaction
	for _, t := range txs {
		key := marketKey(t)
		i, ok := index[key]
		if !ok {
			i = len(streams)
			index[key] = i
			streams = append(streams, nil)
		}
		streams[i] = append(streams[i], t)
	}
	return streams
}

// marketKey returns the target mint t trades. A batch belongs to the market
// of its first inner transaction.
func marketKey(t tx.Transaction) types.AccountID {
	switch v := t.(type) {
	case *market.NewMarket:
		return v.TargetMint
	case *market.Buy:
		return v.TargetMint
	case *market.Sell:
		return v.TargetMint
	case *market.SponsoredBurn:
		return v.TargetMint
	case *tx.Batch:
		if len(v.Transactions) > 0 {
			return marketKey(v.Transactions[0])
		}
	}
	return types.AccountID{}
}
