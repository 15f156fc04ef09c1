package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔎 ExpandFiles resolves the files list into concrete paths relative to
// BaseDir, in order. An entry naming an existing file is taken literally, so
// route folders like [id] are not read as character classes. Other entries
// with glob syntax are expanded and sorted. Literal entries that do not exist
// are kept so they can be reported as missing, and so are bracket-only
// entries that match nothing. Duplicates keep their first position.
func (cfg *Config) ExpandFiles(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(cfg.BaseDir)

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, entry := range cfg.Files {
		if isLiteralFile(fsys, entry) || !hasGlobMeta(entry) {
			add(entry)
			continue
		}

		if !doublestar.ValidatePattern(entry) {
			return nil, errors.Errorf("invalid file pattern %q", entry)
		}
		matches, err := doublestar.Glob(fsys, entry, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", entry, err)
		}
		if len(matches) == 0 && !strings.ContainsAny(entry, "*?") {
			add(entry)
			continue
		}
		sort.Strings(matches)
		logger.Debug().Str("pattern", entry).Int("matches", len(matches)).Msg("expanded file pattern")
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

func hasGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func isLiteralFile(fsys fs.FS, p string) bool {
	if filepath.IsAbs(p) {
		info, err := os.Stat(p)
		return err == nil && !info.IsDir()
	}
	info, err := fs.Stat(fsys, p)
	return err == nil && !info.IsDir()
}
