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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/retrofit/pkg/rule"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Profile names are available as bare
// variables, so `profile = backend` works as well as the quoted form.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "retrofit.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			rule.ProfileFrontend: cty.StringVal(rule.ProfileFrontend),
			rule.ProfileBackend:  cty.StringVal(rule.ProfileBackend),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		BaseDir                  string   `hcl:"base_dir,optional"`
		Profile                  string   `hcl:"profile,optional"`
		Files                    []string `hcl:"files,optional"`
		BackupSuffix             string   `hcl:"backup_suffix,optional"`
		TimeoutMillis            int      `hcl:"timeout_ms,optional"`
		TransactionTimeoutMillis int      `hcl:"transaction_timeout_ms,optional"`
		ImportPath               string   `hcl:"import_path,optional"`
		IconPackage              string   `hcl:"icon_package,optional"`
		ErrorMessage             string   `hcl:"error_message,optional"`
		DryRun                   bool     `hcl:"dry_run,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		BaseDir:                  hclCfg.BaseDir,
		Profile:                  hclCfg.Profile,
		Files:                    hclCfg.Files,
		BackupSuffix:             hclCfg.BackupSuffix,
		TimeoutMillis:            hclCfg.TimeoutMillis,
		TransactionTimeoutMillis: hclCfg.TransactionTimeoutMillis,
		ImportPath:               hclCfg.ImportPath,
		IconPackage:              hclCfg.IconPackage,
		ErrorMessage:             hclCfg.ErrorMessage,
		DryRun:                   hclCfg.DryRun,
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
