package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates the apply command
func NewApplyCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite the configured files",
		Long: `Apply runs the profile's rules over every configured file.
It will:
1. Skip files that are missing or already retrofitted
2. Back up each file it is about to change
3. Write the rewritten content in place
4. Print a summary of what happened`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.Config

			header := "applying " + cfg.Profile + " rules"
			if cfg.DryRun {
				header += " (dry run)"
			}
			root.Logger.Header(header)

			report, err := runPipeline(ctx, root, cfg.DryRun)
			if err != nil {
				root.Logger.Errorf("%v", err)
				return err
			}

			root.Logger.Summary(report.Summary, cfg.BackupSuffix, cfg.DryRun)

			if report.Summary.Failed() {
				return errors.Errorf("%d of %d files failed", report.Summary.Errors, report.Summary.Total)
			}
			return nil
		},
	}

	return cmd
}
