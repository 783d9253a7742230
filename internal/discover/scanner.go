// Package discover finds the JavaScript and TypeScript files that
// vitestlint should check.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/unbound-force/vitestlint/internal/config"
	"github.com/unbound-force/vitestlint/internal/jsparse"
)

// ScanOptions configures a Scan invocation.
type ScanOptions struct {
	// Config provides include/exclude patterns. If nil,
	// DefaultConfig() is used.
	Config *config.Config

	// Timeout bounds the walk. Zero means no timeout.
	Timeout time.Duration
}

// Scan walks the tree rooted at root and returns the relative paths
// of every supported source file that passes the filters, sorted.
// Hidden directories and node_modules are never entered.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]string, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("scanning %s: %w", root, ctxErr)
		}
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if rel != "." && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !jsparse.Supported(d.Name()) {
			return nil
		}
		if !Filter(rel, opts.Config) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Expand resolves command-line arguments into file paths. Directories
// are scanned and their results joined back onto the directory.
// Files are kept as given, even when filters would reject them.
// Duplicates are dropped and the first occurrence wins.
func Expand(ctx context.Context, args []string, opts ScanOptions) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := Scan(ctx, arg, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(filepath.Join(arg, f))
		}
	}
	return out, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
