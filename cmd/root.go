package cmd

import (
	"fmt"
	"os"

	"kodi2jellyfin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command. The tool has a single operation, so the
// root command itself runs the migration.
var RootCmd = &cobra.Command{
	Use:   "kodi2jellyfin <kodi_tsv> <jellyfin_data_dir>",
	Short: "Migrate Kodi watched status into Jellyfin",
	Long: `kodi2jellyfin migrates per-title watched status from a Kodi export into a
Jellyfin server's data directory, matching items on filesystem path.

The first argument is a tab-separated dump of Kodi's watch status (see
README.md for the exact format). The second is a path to a Jellyfin data
directory. Don't be crazy, make a copy!`,
	Args:          cobra.ExactArgs(2),
	RunE:          runMigrate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("migration failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
