package cmd

import (
	"context"
	"fmt"

	"kodi2jellyfin/core/config"
	"kodi2jellyfin/core/database"
	"kodi2jellyfin/core/logger"
	"kodi2jellyfin/feature/watched"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the migration
	jellyfinUsername string
	verboseOutput    bool
	dryRunMigration  bool
)

func init() {
	RootCmd.Flags().StringVar(&jellyfinUsername, "jellyfin-username", "", "The Jellyfin user whose watched status we should update")
	RootCmd.Flags().BoolVarP(&verboseOutput, "verbose", "v", false, "Enable debug logging")
	RootCmd.Flags().BoolVar(&dryRunMigration, "dry-run", false, "Run the full pass and report without writing anything")
	_ = RootCmd.MarkFlagRequired("jellyfin-username")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	kodiTSV := args[0]

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// CLI arguments override the environment
	cfg.Jellyfin.DataDir = args[1]
	if verboseOutput {
		cfg.Log.Level = "debug"
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l)

	l.Info("Starting watched-status migration",
		zap.String("kodi_tsv", kodiTSV),
		zap.String("jellyfin_data_dir", cfg.Jellyfin.DataDir),
		zap.String("jellyfin_username", jellyfinUsername),
		zap.Bool("dry_run", dryRunMigration),
	)

	// Connect to both Jellyfin stores; they are released together on every
	// exit path from here on.
	stores, err := database.Open(cfg.Jellyfin)
	if err != nil {
		return fmt.Errorf("failed to open jellyfin stores: %w", err)
	}
	defer func() { _ = stores.Close() }()

	// Verify the expected schema before touching anything
	if err := verifySchema(stores); err != nil {
		return err
	}

	store := watched.NewLibraryStore(stores.Users, stores.Library)

	// Resolve the destination user; no default user exists
	user, err := store.FindUserByName(ctx, jellyfinUsername)
	if err != nil {
		return err
	}

	// Open the export; the reader is lazy and single-pass
	records, err := watched.OpenRecords(kodiTSV)
	if err != nil {
		return err
	}
	defer func() { _ = records.Close() }()

	// The whole pass commits together or not at all: any error rolls back
	// every upsert issued so far.
	var report *watched.Report
	err = stores.Library.Transaction(func(tx *gorm.DB) error {
		engine := watched.NewEngine(watched.NewLibraryStore(stores.Users, tx), l)

		var runErr error
		report, runErr = engine.Run(ctx, records, user, watched.Options{DryRun: dryRunMigration})
		return runErr
	})
	if err != nil {
		return err
	}

	printMigrationReport(l, report, dryRunMigration)
	return nil
}

// verifySchema checks that both stores carry the tables and columns the
// migration depends on.
func verifySchema(stores *database.Stores) error {
	if err := database.VerifyTable(stores.Users, "Users", []string{"InternalId", "Username"}); err != nil {
		return err
	}
	if err := database.VerifyTable(stores.Library, "TypedBaseItems", []string{"Path", "UserDataKey"}); err != nil {
		return err
	}
	return database.VerifyTable(stores.Library, "UserDatas",
		[]string{"key", "userId", "played", "playCount", "lastPlayedDate", "isFavorite", "playbackPositionTicks"})
}

// printMigrationReport logs the outcome of the run. Unmatched records are
// surfaced as one combined warning; they do not fail the run.
func printMigrationReport(l *zap.Logger, report *watched.Report, dryRun bool) {
	l.Info("Migration report",
		zap.Int("applied", report.Applied),
		zap.Int("skipped", report.Skipped),
		zap.Int("unmatched", report.Unmatched),
	)

	if len(report.UnmatchedPaths) > 0 {
		l.Warn("Some files are marked as watched in Kodi, but don't exist over in Jellyfin",
			zap.Int("count", len(report.UnmatchedPaths)),
			zap.Strings("paths", report.UnmatchedPaths),
		)
	}

	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
}
