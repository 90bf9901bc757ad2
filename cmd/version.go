package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time via ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nfrecon %s (built %s, %s)\n", Version, BuildDate, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
