package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/app"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

// open loads configuration and builds the application. Callers must Close it.
func open(configPath string) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return app.New(cfg, logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			// app.New already applied the schema
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", a.Config.Database.Type)
			return nil
		},
	}
}

func reindexCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Push every live property to the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Catalog.Reindex(cmd.Context())
			if err != nil {
				return fmt.Errorf("reindex failed after %d properties: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d properties.\n", n)
			return nil
		},
	}
}

func purgeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Physically delete properties soft-deleted longer than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			retention, _ := cmd.Flags().GetInt("retention-days")
			maxCount, _ := cmd.Flags().GetInt("max")

			a, err := open(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.CleanupDefaults()
			cfg.DryRun = dryRun
			if retention > 0 {
				cfg.RetentionDays = retention
			}
			if maxCount > 0 {
				cfg.MaxDeletionCount = maxCount
			}
			result, err := a.Cleanup.PhysicallyDelete(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Bool("dry-run", false, "only report what would be deleted")
	cmd.Flags().Int("retention-days", 0, "override the configured retention period")
	cmd.Flags().Int("max", 0, "override the configured safety limit")
	return cmd
}

func sweepFeaturedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-featured",
		Short: "Clear featured flags whose window has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Catalog.ExpireFeatured(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expired %d featured listings.\n", n)
			return nil
		},
	}
}

func deleteStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-stats",
		Short: "Show purge history and pending soft-deleted properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.Cleanup.GetDeleteStats(cmd.Context(), a.Config.Cleanup.RetentionDays)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}
