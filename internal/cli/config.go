package cli

import (
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/config"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and generate configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write an example configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveExampleConfig(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		shown := *cfg
		if shown.History.Driver != "" && shown.History.Driver != relationaldb.DriverSQLite {
			shown.History.DSN = "***"
		}
		if err := printJSON(out, shown); err != nil {
			return err
		}
		fmt.Fprintf(out, "program account: %s\n", cfg.ProgramAccount())
		if cfg.HistoryEnabled() {
			fmt.Fprintf(out, "history: %s\n", cfg.RelationalConfig())
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
