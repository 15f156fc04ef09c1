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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/rule"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	DefaultTimeoutMillis            = 5000
	DefaultTransactionTimeoutMillis = 8000
)

// 📚 Config represents the complete configuration
type Config struct {
	BaseDir                  string   `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
	Profile                  string   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Files                    []string `json:"files,omitempty" yaml:"files,omitempty"`
	BackupSuffix             string   `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty"`
	TimeoutMillis            int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	TransactionTimeoutMillis int      `json:"transaction_timeout_ms,omitempty" yaml:"transaction_timeout_ms,omitempty"`
	ImportPath               string   `json:"import_path,omitempty" yaml:"import_path,omitempty"`
	IconPackage              string   `json:"icon_package,omitempty" yaml:"icon_package,omitempty"`
	ErrorMessage             string   `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	DryRun                   bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// 🏭 Default returns a validated configuration for profile rooted at baseDir
func Default(baseDir, profile string) (*Config, error) {
	cfg := &Config{BaseDir: baseDir, Profile: profile}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// 🎯 Load loads the configuration from a file. A relative base_dir is taken
// relative to the file's directory.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().
		Str("base_dir", cfg.BaseDir).
		Str("profile", cfg.Profile).
		Int("files", len(cfg.Files)).
		Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate fills defaults and checks the configuration. It is safe to call
// again after flags override fields.
func (cfg *Config) Validate() error {
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	cfg.BaseDir = filepath.Clean(cfg.BaseDir)

	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	if cfg.Profile == "" {
		cfg.Profile = rule.ProfileFrontend
	}
	if cfg.Profile != rule.ProfileFrontend && cfg.Profile != rule.ProfileBackend {
		return errors.Errorf("%w: %q", rule.ErrUnknownProfile, cfg.Profile)
	}

	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = status.DefaultBackupSuffix
	}
	if strings.ContainsAny(cfg.BackupSuffix, `/\`) || strings.TrimSpace(cfg.BackupSuffix) == "" {
		return errors.Errorf("backup_suffix %q must be a plain file suffix", cfg.BackupSuffix)
	}

	if cfg.TimeoutMillis < 0 {
		return errors.Errorf("timeout_ms must be positive, got %d", cfg.TimeoutMillis)
	}
	if cfg.TimeoutMillis == 0 {
		cfg.TimeoutMillis = DefaultTimeoutMillis
	}
	if cfg.TransactionTimeoutMillis < 0 {
		return errors.Errorf("transaction_timeout_ms must be positive, got %d", cfg.TransactionTimeoutMillis)
	}
	if cfg.TransactionTimeoutMillis == 0 {
		cfg.TransactionTimeoutMillis = DefaultTransactionTimeoutMillis
	}

	if len(cfg.Files) == 0 {
		cfg.Files = DefaultFiles(cfg.Profile)
	}
	for i, f := range cfg.Files {
		if strings.TrimSpace(f) == "" {
			return errors.Errorf("files[%d] is empty", i)
		}
		cfg.Files[i] = filepath.ToSlash(filepath.Clean(f))
	}

	return nil
}

// FrontendOptions maps the configuration onto the component pipeline settings
func (cfg *Config) FrontendOptions() rule.FrontendOptions {
	return rule.FrontendOptions{
		ClientImportPath: cfg.ImportPath,
		IconPackage:      cfg.IconPackage,
		TimeoutMillis:    cfg.TimeoutMillis,
		ErrorFallback:    cfg.ErrorMessage,
	}
}

// BackendOptions maps the configuration onto the route handler pipeline settings
func (cfg *Config) BackendOptions() rule.BackendOptions {
	return rule.BackendOptions{
		TimeoutImportPath:        cfg.ImportPath,
		TimeoutMillis:            cfg.TimeoutMillis,
		TransactionTimeoutMillis: cfg.TransactionTimeoutMillis,
	}
}

// 📚 RuleSet builds the validated rule set for the configured profile
func (cfg *Config) RuleSet() (*rule.Set, error) {
	return rule.Lookup(cfg.Profile, cfg.FrontendOptions(), cfg.BackendOptions())
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s: %d entries under %s (backup %s)", cfg.Profile, len(cfg.Files), cfg.BaseDir, cfg.BackupSuffix)
}
