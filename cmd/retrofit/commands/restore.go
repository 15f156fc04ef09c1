package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/operation"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Put backed-up originals back in place",
		Long: `Restore copies every configured file's backup over the file and then
removes the backup. Files without a backup are reported as not found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.Config

			root.Logger.Header("restoring backups")

			paths, err := cfg.ExpandFiles(ctx)
			if err != nil {
				root.Logger.Errorf("%v", err)
				return errors.Errorf("expanding files: %w", err)
			}

			report, err := operation.Restore(ctx, operation.Options{
				Paths:    paths,
				Files:    status.New(cfg.BaseDir, cfg.BackupSuffix),
				Reporter: consoleReporter{logger: root.Logger},
				DryRun:   cfg.DryRun,
			})
			if err != nil {
				root.Logger.Errorf("%v", err)
				return err
			}

			sum := report.Summary
			if cfg.DryRun {
				root.Logger.Infof("%d files would be restored", sum.Modified)
			} else {
				root.Logger.Successf("restored %d of %d files", sum.Modified, sum.Total)
			}

			if sum.Failed() {
				return errors.Errorf("%d of %d files failed to restore", sum.Errors, sum.Total)
			}
			return nil
		},
	}

	return cmd
}
