package cli

import (
	"context"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Create, trade, and inspect markets",
}

var marketCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a market and its target mint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, err := accountFlag(cmd, "account")
		if err != nil {
			return err
		}
		target, err := optionalAccountFlag(cmd, "target-mint")
		if err != nil {
			return err
		}
		if target.IsZero() {
			target = freshIdentity()
		}
		payer, err := optionalAccountFlag(cmd, "payer")
		if err != nil {
			return err
		}
		curveName, _ := cmd.Flags().GetString("curve")
		kind, err := curve.ParseKind(curveName)
		if err != nil {
			return err
		}

		t := market.NewNewMarket(creator, args[0], kind, target)
		t.Payer = payer
		return withApp(cmd.Context(), func(a *app) error {
			if err := printResult(cmd, a.engine.Apply(cmd.Context(), t)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "target mint: %s\n", target)
			return nil
		})
	},
}

// tradeCommand builds buy, sell, and burn: all take a market name and a
// whole-token amount.
func tradeCommand(use, short string, build func(cmd *cobra.Command, account, mint types.AccountID, units uint64) (tx.Transaction, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <name> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountFlag(cmd, "account")
			if err != nil {
				return err
			}
			units, err := market.ParseUnits(args[1], cfg.Assets.TargetDecimals)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				m, err := a.registry.Lookup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				t, err := build(cmd, account, m.TargetMint, units)
				if err != nil {
					return err
				}
				return printResult(cmd, a.engine.Apply(cmd.Context(), t))
			})
		},
	}
	cmd.Flags().String("account", "", "trading account")
	return cmd
}

var (
	marketBuyCmd = tradeCommand("buy", "Buy target tokens along the curve",
		func(_ *cobra.Command, account, mint types.AccountID, units uint64) (tx.Transaction, error) {
			return market.NewBuy(account, mint, units), nil
		})

	marketSellCmd = tradeCommand("sell", "Sell target tokens back to escrow",
		func(_ *cobra.Command, account, mint types.AccountID, units uint64) (tx.Transaction, error) {
			return market.NewSell(account, mint, units), nil
		})

	marketBurnCmd = tradeCommand("burn", "Burn target tokens without a refund",
		func(cmd *cobra.Command, account, mint types.AccountID, units uint64) (tx.Transaction, error) {
			source, err := optionalAccountFlag(cmd, "source")
			if err != nil {
				return nil, err
			}
			b := market.NewSponsoredBurn(account, mint, units)
			b.Source = source
			return b, nil
		})
)

var marketQuoteCmd = &cobra.Command{
	Use:   "quote <name> [amount]",
	Short: "Show prices and preview a trade",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var units uint64
		if len(args) == 2 {
			var err error
			if units, err = market.ParseUnits(args[1], cfg.Assets.TargetDecimals); err != nil {
				return err
			}
		}
		return withApp(cmd.Context(), func(a *app) error {
			m, err := a.registry.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var q *market.Quote
			err = a.ledger.View(cmd.Context(), func(l ledger.Accounts) error {
				q, err = market.QuoteMarket(l, a.engine.Config(), m.TargetMint, units)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), q)
		})
	},
}

var marketLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Resolve a market name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			m, err := a.registry.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		})
	},
}

var marketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every market by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			markets, err := a.registry.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range markets {
				fmt.Fprintf(out, "%-32s %s %s\n", m.Name, m.TargetMint, m.Curve)
			}
			return nil
		})
	},
}

var marketHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show recorded trades and volume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := optionalAccountFlag(cmd, "account")
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetUint32("limit")
		offset, _ := cmd.Flags().GetUint32("offset")

		return withApp(cmd.Context(), func(a *app) error {
			db, err := a.requireHistory()
			if err != nil {
				return err
			}
			addr, err := marketAddress(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			trades, err := db.Trades(cmd.Context(), relationaldb.TradeQuery{
				Market: addr, Account: account, Offset: offset, Limit: limit,
			})
			if err != nil {
				return err
			}
			volume, err := db.Volume(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Trades []relationaldb.Trade `json:"trades"`
				Volume *relationaldb.Volume `json:"volume"`
			}{trades, volume})
		})
	},
}

// marketAddress resolves name to the market record address receipts carry.
func marketAddress(ctx context.Context, a *app, name string) (types.AccountID, error) {
	m, err := a.registry.Lookup(ctx, name)
	if err != nil {
		return types.AccountID{}, err
	}
	var addr types.AccountID
	err = a.ledger.View(ctx, func(l ledger.Accounts) error {
		_, addr, err = market.LoadMarket(l, a.engine.Config().Program, m.TargetMint)
		return err
	})
	return addr, err
}

func init() {
	marketCreateCmd.Flags().String("account", "", "creating account")
	marketCreateCmd.Flags().String("payer", "", "account funding the creation (default: --account)")
	marketCreateCmd.Flags().String("target-mint", "", "identity of the new target mint (default: generated)")
	marketCreateCmd.Flags().String("curve", curve.Linear.String(), "pricing curve")

	marketBurnCmd.Flags().String("source", "", "token account to burn from (default: the account's own)")

	marketHistoryCmd.Flags().String("account", "", "only trades by this account")
	marketHistoryCmd.Flags().Uint32("limit", 100, "maximum trades to show")
	marketHistoryCmd.Flags().Uint32("offset", 0, "trades to skip")

	marketCmd.AddCommand(marketCreateCmd, marketBuyCmd, marketSellCmd, marketBurnCmd,
		marketQuoteCmd, marketLookupCmd, marketListCmd, marketHistoryCmd)
	rootCmd.AddCommand(marketCmd)
}
