package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates the check command
func NewCheckCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if any configured file still needs retrofitting",
		Long: `Check is a dry run that never writes. It exits non-zero when any file
would change or could not be processed, so it can gate CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.Config

			root.Logger.Header("checking " + cfg.Profile + " files")

			report, err := runPipeline(ctx, root, true)
			if err != nil {
				root.Logger.Errorf("%v", err)
				return err
			}

			root.Logger.Summary(report.Summary, cfg.BackupSuffix, true)

			switch {
			case report.Summary.Failed():
				return errors.Errorf("%d of %d files failed", report.Summary.Errors, report.Summary.Total)
			case report.Summary.Modified > 0:
				root.Logger.Warningf("%d files need retrofitting", report.Summary.Modified)
				return errors.Errorf("%d files need retrofitting", report.Summary.Modified)
			}

			root.Logger.Success("all files are up to date")
			return nil
		},
	}

	return cmd
}
