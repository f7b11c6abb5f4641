package cli

import (
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ledgerCmd groups administrative commands against the standalone ledger.
// Markets never need them; they stand in for the wallet and faucet tooling
// a hosted ledger provides.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Administer mints and token accounts",
}

var mintCreateCmd = &cobra.Command{
	Use:   "mint-create",
	Short: "Create a mint",
	Long: `Create a mint controlled by --authority. Without --id a fresh identity
is generated. Use the printed address as assets.base_mint to make it the
base token of every market.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := accountFlag(cmd, "authority")
		if err != nil {
			return err
		}
		id, err := optionalAccountFlag(cmd, "id")
		if err != nil {
			return err
		}
		if id.IsZero() {
			id = freshIdentity()
		}
		decimals, _ := cmd.Flags().GetUint8("decimals")

		return withApp(cmd.Context(), func(a *app) error {
			_, err := a.ledger.Transact(cmd.Context(), func(l ledger.Accounts) error {
				return l.CreateMint(id, authority, decimals)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var accountCreateCmd = &cobra.Command{
	Use:   "account-create",
	Short: "Create the associated token account of an owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := accountFlag(cmd, "owner")
		if err != nil {
			return err
		}
		mint, err := accountFlag(cmd, "mint")
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			var id types.AccountID
			_, err := a.ledger.Transact(cmd.Context(), func(l ledger.Accounts) error {
				id = ledger.AssociatedTokenAccount(owner, mint)
				return l.CreateTokenAccount(id, owner, mint)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var mintToCmd = &cobra.Command{
	Use:   "mint-to <amount>",
	Short: "Issue whole tokens to an owner's associated account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mint, err := accountFlag(cmd, "mint")
		if err != nil {
			return err
		}
		to, err := accountFlag(cmd, "to")
		if err != nil {
			return err
		}
		authority, err := accountFlag(cmd, "authority")
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			_, err := a.ledger.Transact(cmd.Context(), func(l ledger.Accounts) error {
				m, err := l.Mint(mint)
				if err != nil {
					return err
				}
				units, err := market.ParseUnits(args[0], m.Decimals)
				if err != nil {
					return err
				}
				ata, err := l.EnsureAssociatedTokenAccount(to, mint)
				if err != nil {
					return err
				}
				return l.MintTo(mint, ata, units, ledger.Wallet(authority))
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "issued %s to %s\n", args[0], to)
			return nil
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show an owner's balance of a mint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := accountFlag(cmd, "owner")
		if err != nil {
			return err
		}
		mint, err := accountFlag(cmd, "mint")
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			return a.ledger.View(cmd.Context(), func(l ledger.Accounts) error {
				m, err := l.Mint(mint)
				if err != nil {
					return err
				}
				held, err := l.Balance(ledger.AssociatedTokenAccount(owner, mint))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (supply %s)\n",
					market.FormatUnits(held, m.Decimals), market.FormatUnits(m.Supply, m.Decimals))
				return nil
			})
		})
	},
}

// freshIdentity returns an unused-looking identity for a new mint.
func freshIdentity() types.AccountID {
	u := uuid.New()
	return types.AccountID(crypto.CalcAccountID(u[:]))
}

func init() {
	mintCreateCmd.Flags().String("authority", "", "account allowed to issue the mint")
	mintCreateCmd.Flags().String("id", "", "mint identity (default: generated)")
	mintCreateCmd.Flags().Uint8("decimals", 6, "decimal places of one whole token")

	accountCreateCmd.Flags().String("owner", "", "account owner")
	accountCreateCmd.Flags().String("mint", "", "mint the account holds")

	mintToCmd.Flags().String("mint", "", "mint to issue")
	mintToCmd.Flags().String("to", "", "receiving owner")
	mintToCmd.Flags().String("authority", "", "mint authority signing the issue")

	balanceCmd.Flags().String("owner", "", "account owner")
	balanceCmd.Flags().String("mint", "", "mint to read")

	ledgerCmd.AddCommand(mintCreateCmd, accountCreateCmd, mintToCmd, balanceCmd)
	rootCmd.AddCommand(ledgerCmd)
}
