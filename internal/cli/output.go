package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult reports an engine result and returns its error, if any.
func printResult(cmd *cobra.Command, res tx.ApplyResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", res.Result, res.Message)
	dec := cfg.Assets
	for _, r := range res.Receipts {
		fmt.Fprintf(out, "  %-13s %s amount=%s settlement=%s curve_supply=%s burned=%s\n",
			r.Type, r.Account,
			market.FormatUnits(r.Amount, dec.TargetDecimals),
			market.FormatUnits(r.Settlement, dec.BaseDecimals),
			market.FormatUnits(r.CurveSupply, dec.TargetDecimals),
			market.FormatUnits(r.AmountBurned, dec.TargetDecimals))
	}
	return res.Err()
}

// accountFlag reads a required account flag.
func accountFlag(cmd *cobra.Command, name string) (types.AccountID, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.AccountID{}, err
	}
	if s == "" {
		return types.AccountID{}, fmt.Errorf("--%s is required", name)
	}
	id, err := types.ParseAccountID(s)
	if err != nil {
		return types.AccountID{}, fmt.Errorf("--%s: %w", name, err)
	}
	return id, nil
}

// optionalAccountFlag reads an account flag that may be empty.
func optionalAccountFlag(cmd *cobra.Command, name string) (types.AccountID, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return types.AccountID{}, nil
	}
	return accountFlag(cmd, name)
}
