// Package analysis is the host engine for vitestlint. It parses
// JavaScript and TypeScript sources, runs the vitest globals rule on
// each file, and applies the resulting fixes.
package analysis

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/rule"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// Options configures a lint run.
type Options struct {
	// Rule holds the rule options shared by every file.
	Rule rule.Options

	// Concurrency bounds the number of files processed at once.
	// Zero or negative means runtime.NumCPU().
	Concurrency int

	// Fix applies the computed fix and stores the result in
	// FileResult.Output.
	Fix bool

	// Version is the vitestlint version to embed in metadata.
	// If empty, defaults to "dev".
	Version string
}

// LintSource checks a single in-memory file. The path selects the
// grammar and, unless configured, the source type.
func LintSource(ctx context.Context, path string, src []byte, opts Options) (taxonomy.FileResult, error) {
	result := taxonomy.FileResult{
		File:        path,
		SourceType:  rule.SourceTypeFor(path, opts.Rule.SourceType),
		Diagnostics: []taxonomy.Diagnostic{},
		Source:      src,
	}

	diag, syntaxErr, err := check(ctx, path, src, opts.Rule)
	if err != nil {
		return result, err
	}
	if syntaxErr {
		result.Warnings = append(result.Warnings, "syntax errors found; results may be incomplete")
	}
	if diag == nil {
		return result, nil
	}
	result.Diagnostics = append(result.Diagnostics, *diag)

	if !opts.Fix || diag.Fix == nil {
		return result, nil
	}
	if syntaxErr {
		result.Warnings = append(result.Warnings, "fix skipped because the file has syntax errors")
		return result, nil
	}

	out, err := ApplyFix(src, *diag.Fix)
	if err != nil {
		return result, fmt.Errorf("fixing %s: %w", path, err)
	}
	result.Output = out

	// A second pass over the fixed output must be clean.
	again, _, err := check(ctx, path, out, opts.Rule)
	if err != nil {
		return result, fmt.Errorf("re-checking %s: %w", path, err)
	}
	if again != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("fixed output still reports: %s", again.Message))
	}

	return result, nil
}

// LintFile reads path from disk and checks it.
func LintFile(ctx context.Context, path string, opts Options) (taxonomy.FileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return taxonomy.FileResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return LintSource(ctx, path, src, opts)
}

// LintFiles checks every path with bounded concurrency. Results are
// returned in the order of paths. The first error cancels the run.
func LintFiles(ctx context.Context, paths []string, opts Options) ([]taxonomy.FileResult, taxonomy.Metadata, error) {
	start := time.Now()

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]taxonomy.FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := LintFile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, taxonomy.Metadata{}, err
	}

	meta := buildMetadata(start, opts.Version, len(paths))
	for _, r := range results {
		for _, w := range r.Warnings {
			meta.Warnings = append(meta.Warnings, r.File+": "+w)
		}
	}
	return results, meta, nil
}

// ApplyFix returns a copy of src with fix applied.
func ApplyFix(src []byte, fix taxonomy.Fix) ([]byte, error) {
	start, end := fix.Range.Start, fix.Range.End
	if start < 0 || end < start || end > len(src) {
		return nil, fmt.Errorf("fix range [%d, %d) out of bounds for %d bytes", start, end, len(src))
	}
	out := make([]byte, 0, len(src)-(end-start)+len(fix.Text))
	out = append(out, src[:start]...)
	out = append(out, fix.Text...)
	out = append(out, src[end:]...)
	return out, nil
}

// check parses src and runs the rule. It also reports whether the
// syntax tree contains errors.
func check(ctx context.Context, path string, src []byte, opts rule.Options) (*taxonomy.Diagnostic, bool, error) {
	f, err := jsparse.Parse(ctx, path, src)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	return rule.Check(f, opts), f.Root().HasError(), nil
}

// buildMetadata creates run metadata with current timing.
func buildMetadata(start time.Time, version string, files int) taxonomy.Metadata {
	if version == "" {
		version = "dev"
	}
	return taxonomy.Metadata{
		Version:   version,
		Files:     files,
		Timestamp: start,
		Duration:  time.Since(start),
		Warnings:  nil,
	}
}
