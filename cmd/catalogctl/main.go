package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Property catalog maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config/catalog.yaml"), "path to the YAML config file")

	rootCmd.AddCommand(
		migrateCmd(&configPath),
		reindexCmd(&configPath),
		purgeCmd(&configPath),
		sweepFeaturedCmd(&configPath),
		deleteStatsCmd(&configPath),
	)
	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
