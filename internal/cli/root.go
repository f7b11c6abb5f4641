package cli

import (
	"fmt"
	"os"

	"github.com/LeJamon/goBondedMarkets/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configFile string
	verbose    bool

	// Set up by PersistentPreRunE for every command
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bondedd",
	Short: "Bonded-curve token markets",
	Long: `bondedd creates and trades bonded-curve token markets.

Every market issues a target token whose price follows a linear curve over
its supply. Buyers pay the shared base token into the market's escrow and
sellers redeem against the same curve. Sponsored burns retire supply
without moving the curve.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (default: search for bondedd.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	l, err := newLogger(c.Log, verbose)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
