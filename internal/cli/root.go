package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "genmeta",
	Short: "Generation metadata extractor for AI-generated media",
	Long: `genmeta reads the generation parameters that image tools embed in their
output (ComfyUI workflows, Automatic1111/Forge parameter blocks, SwarmUI
params, sidecar .json/.txt files) and normalizes them into one record.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  4  - No generation metadata found
  10 - Invalid configuration
  11 - Unsupported media type
  12 - Remote metadata fetch failed
  13 - Record store operation failed`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (default from genmeta.yaml)")
	rootCmd.PersistentFlags().String("config-dir", ".", "Directory containing genmeta.yaml and .env")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// commandContext returns the context of cmd, or Background when the
// command runs outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
