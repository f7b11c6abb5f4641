package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "bondedd version %s\n", rootCmd.Version)
		if rev := vcsRevision(); rev != "" {
			fmt.Fprintf(out, "Revision: %s\n", rev)
		}
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Transaction types: %v\n", tx.Registered())
		fmt.Fprintf(out, "Curves: %s\n", curve.Linear)
	},
}

// vcsRevision returns the commit the binary was built from, if recorded.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var rev, dirty string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "+dirty"
			}
		}
	}
	if rev == "" {
		return ""
	}
	return rev + dirty
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
