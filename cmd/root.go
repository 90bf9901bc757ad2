package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/diugotfmc/nfrecon/pkg/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "nfrecon",
	Short: "Extract NF-e line items and reconcile them against a reference listing",
	Long: `nfrecon extracts line items from the free-text body of electronic
invoice PDFs (DANFE), parses a companion reference listing in one of
several layouts, and reconciles the two sides by material key.

Example usage:
  nfrecon process --invoice nota.pdf --reference itens.txt --format fixed-block
  nfrecon process --invoice nota.pdf --reference itens.xlsx --format xlsx --output ./out`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
