package discover

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/unbound-force/vitestlint/internal/config"
)

// Filter returns true if the relative path should be checked,
// based on the include/exclude patterns in cfg.
//
// Logic:
//  1. If include patterns are set, the file must match at least one.
//  2. If the file matches any exclude pattern, it is excluded.
//  3. Otherwise, the file is included.
func Filter(rel string, cfg *config.Config) bool {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Normalize separators to forward slash for matching consistency.
	rel = filepath.ToSlash(rel)

	if len(cfg.Include) > 0 {
		matched := false
		for _, pattern := range cfg.Include {
			if matchGlob(pattern, rel) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range cfg.Exclude {
		if matchGlob(pattern, rel) {
			return false
		}
	}

	return true
}

// matchGlob matches a slash-separated path against a doublestar
// pattern. A pattern without a slash also matches the base name,
// so "*.spec.js" applies at any depth.
func matchGlob(pattern, rel string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := doublestar.Match(pattern, filepath.Base(rel))
	return err == nil && ok
}
