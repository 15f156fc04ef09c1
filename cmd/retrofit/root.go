// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/commands"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// configCandidates are tried in order when --config is not given
var configCandidates = []string{".retrofit.hcl", ".retrofit.yaml", ".retrofit.yml", ".retrofit.json"}

// rootFlags holds the persistent flags shared by every subcommand
type rootFlags struct {
	configFile string
	debug      bool
	baseDir    string
	profile    string
	dryRun     bool
}

// 🌱 NewCommand builds the retrofit command tree
func NewCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "retrofit",
		Short: "Retrofit timeout handling into Next.js pages and API routes",
		Long: `retrofit rewrites a fixed list of source files in place so that network
and database calls get timeout handling. Every rewrite is idempotent and every
modified file is backed up first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := flags.setupLogging(cmd)
			root.Logger = log.NewWithZerolog(cmd.OutOrStdout(), *zerolog.Ctx(ctx))

			cfg, err := flags.loadConfig(ctx, cmd)
			if err != nil {
				root.Logger.Errorf("%v", err)
				return err
			}
			root.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .retrofit.{hcl,yaml,yml,json} if present)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.baseDir, "base-dir", "", "project root the file list is relative to")
	cmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "rule profile: frontend or backend")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing")

	cmd.AddCommand(
		commands.NewApplyCmd(root),
		commands.NewCheckCmd(root),
		commands.NewRestoreCmd(root),
		newVersionCmd(),
	)

	return cmd
}

// setupLogging raises the context logger to debug when asked
func (f *rootFlags) setupLogging(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.InfoLevel
	if f.debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		l := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
		logger = &l
	}
	ctx = logger.Level(level).WithContext(ctx)
	cmd.SetContext(ctx)
	return ctx
}

// loadConfig reads the config file, or builds defaults, then applies flag overrides
func (f *rootFlags) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		path = discoverConfig()
	}

	if path == "" {
		cfg, err := config.Default(f.baseDir, f.profile)
		if err != nil {
			return nil, errors.Errorf("building default config: %w", err)
		}
		cfg.DryRun = f.dryRun
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	flagSet := cmd.Flags()
	if flagSet.Changed("base-dir") {
		cfg.BaseDir = f.baseDir
	}
	if flagSet.Changed("profile") && f.profile != cfg.Profile {
		// files that were only the old profile's defaults follow the new profile
		if slices.Equal(cfg.Files, config.DefaultFiles(cfg.Profile)) {
			cfg.Files = nil
		}
		cfg.Profile = f.profile
	}
	if flagSet.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func discoverConfig() string {
	for _, name := range configCandidates {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return filepath.Clean(name)
		}
	}
	return ""
}
