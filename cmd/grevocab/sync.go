package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/grevocab/internal/config"
	"github.com/at-ishikawa/grevocab/internal/datasync"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

type syncDirection int

const (
	syncToDatabase syncDirection = iota
	syncToFile
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy progress between the YAML file and the database",
	}
	cmd.AddCommand(
		newSyncDirectionCommand("export", "Export the YAML progress file into the database", syncToDatabase),
		newSyncDirectionCommand("import", "Import progress from the database into the YAML file", syncToFile),
	)
	return cmd
}

func newSyncDirectionCommand(use, short string, direction syncDirection) *cobra.Command {
	var file string
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.StorageDriverYAML {
				return fmt.Errorf("sync needs a database storage driver, got %q", cfg.Storage.Driver)
			}

			dbRepo, closeRepo, err := openRepository(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer closeRepo()
			fileRepo := progress.NewYAMLRepository(file)

			source, destination := progress.Repository(fileRepo), dbRepo
			if direction == syncToFile {
				source, destination = dbRepo, fileRepo
			}

			out := cmd.OutOrStdout()
			opts := datasync.SyncOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := datasync.NewSyncer(source, destination, out).Sync(ctx, opts)
			if err != nil {
				return fmt.Errorf("sync progress: %w", err)
			}
			printSyncSummary(out, result, opts)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", filepath.Join("data", "progress.yml"), "YAML progress file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing the destination")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Replace records that already exist in the destination")
	return cmd
}

func printSyncSummary(w io.Writer, result *datasync.SyncResult, opts datasync.SyncOptions) {
	_, _ = fmt.Fprintln(w, "\nSync Summary:")
	if opts.DryRun {
		_, _ = fmt.Fprintln(w, "  (dry-run mode, no changes made)")
	}
	_, _ = fmt.Fprintf(w, "  Records:  %d new, %d skipped, %d updated, %d kept\n",
		result.RecordsNew, result.RecordsSkipped, result.RecordsUpdated, result.RecordsKept)
	_, _ = fmt.Fprintf(w, "  Sessions: %d new\n", result.SessionsNew)
}
