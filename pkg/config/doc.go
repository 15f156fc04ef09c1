/*
Package config manages configuration parsing and validation for retrofit.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads the run configuration from YAML, HCL or JSON
- Fills defaults: profile, backup suffix, timeouts and the stock file lists
- Expands glob entries in the file list
- Builds the rule set for the chosen profile

🔄 Flow:
1. Load picks a parser by file extension
2. The parser decodes strictly, so unknown keys are errors
3. A relative base_dir is resolved against the config file's directory
4. Validate fills defaults and rejects bad values
5. ExpandFiles turns entries into concrete paths

⚡ Notes:
- Validate is idempotent; run it again after applying flag overrides
- Entries naming an existing file are never treated as patterns
- In HCL, profile names may be written bare: profile = backend

🔍 Example:

	cfg, err := config.Load(ctx, "retrofit.yaml")
	if err != nil {
		return err
	}

	set, err := cfg.RuleSet()
	paths, err := cfg.ExpandFiles(ctx)
*/
package config
