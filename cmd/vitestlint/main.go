// Command vitestlint reports vitest framework functions used as
// implicit globals and rewrites files to import them from 'vitest'.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/vitestlint/internal/analysis"
	"github.com/unbound-force/vitestlint/internal/config"
	"github.com/unbound-force/vitestlint/internal/discover"
	"github.com/unbound-force/vitestlint/internal/report"
	"github.com/unbound-force/vitestlint/internal/rule"
	"github.com/unbound-force/vitestlint/internal/scaffold"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

// errProblems marks a run that completed but found diagnostics.
var errProblems = errors.New("problems found")

func main() {
	root := &cobra.Command{
		Use:   "vitestlint",
		Short: "vitestlint: require explicit imports of vitest globals",
		Long: `vitestlint finds calls to vitest framework functions (describe,
test, expect, vi, hooks, ...) that rely on implicit globals and
rewrites each file to import or require them from 'vitest'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file at path and applies command-line
// overrides. Empty overrides keep the file values.
func loadConfig(path, types, sourceType string) (*config.Config, error) {
	if path == "" {
		path = config.FileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if types != "" {
		cfg.Types = config.SplitList(types)
	}
	if sourceType != "" {
		cfg.SourceType = sourceType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// analysisOptions converts a validated config into engine options.
func analysisOptions(cfg *config.Config, fix bool) (analysis.Options, error) {
	names, err := cfg.FnNames()
	if err != nil {
		return analysis.Options{}, err
	}
	return analysis.Options{
		Rule: rule.Options{
			Types:      names,
			SourceType: cfg.SourceTypeValue(),
		},
		Concurrency: cfg.Concurrency,
		Fix:         fix,
		Version:     version,
	}, nil
}

// lintParams holds the flags shared by check and fix.
type lintParams struct {
	ctx        context.Context
	paths      []string
	configPath string
	types      string
	sourceType string
}

// lint discovers the files named by p and checks them.
func lint(p lintParams, fix bool) ([]taxonomy.FileResult, *taxonomy.Metadata, error) {
	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(p.configPath, p.types, p.sourceType)
	if err != nil {
		return nil, nil, err
	}
	opts, err := analysisOptions(cfg, fix)
	if err != nil {
		return nil, nil, err
	}

	files, err := discover.Expand(ctx, p.paths, discover.ScanOptions{Config: cfg})
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		logger.Warn("no JavaScript or TypeScript files found", "paths", p.paths)
	}

	logger.Info("checking files", "files", len(files))
	results, meta, err := analysis.LintFiles(ctx, files, opts)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range meta.Warnings {
		logger.Warn(w)
	}
	return results, &meta, nil
}

func countProblems(results []taxonomy.FileResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Diagnostics)
	}
	return n
}

// checkParams holds the parsed flags for the check command.
type checkParams struct {
	lintParams
	format      string
	diff        bool
	table       bool
	interactive bool
	stdout      io.Writer
	stderr      io.Writer
}

// runCheck is the extracted, testable body of the check command.
func runCheck(p checkParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	results, meta, err := lint(p.lintParams, p.diff)
	if err != nil {
		return err
	}

	problems := countProblems(results)
	logger.Info("check complete", "files", len(results), "problems", problems)

	if p.interactive {
		if err := runInteractiveCheck(results); err != nil {
			return err
		}
	} else {
		switch p.format {
		case "json":
			err = report.WriteJSON(p.stdout, results, meta, version)
		default:
			err = report.WriteTextOptions(p.stdout, results,
				report.TextOptions{ShowFix: !p.diff, Table: p.table})
		}
		if err != nil {
			return err
		}
		if p.diff {
			if err := report.WriteDiff(p.stdout, results); err != nil {
				return err
			}
		}
	}

	if problems > 0 {
		fmt.Fprintf(p.stderr, "%d problem(s) found\n", problems)
		return errProblems
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var p checkParams

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report vitest functions used as implicit globals",
		Long: `Check JavaScript and TypeScript files for calls to vitest
framework functions that are not imported or required from 'vitest'.
Directories are scanned recursively; the default is the current
directory. Exits with status 1 when problems are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.ctx = cmd.Context()
			p.paths = args
			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			return runCheck(p)
		},
	}

	addLintFlags(cmd, &p.lintParams)
	cmd.Flags().StringVar(&p.format, "format", "text",
		"output format: text or json")
	cmd.Flags().BoolVar(&p.diff, "diff", false,
		"print a unified diff of the fixes")
	cmd.Flags().BoolVar(&p.table, "table", false,
		"append a summary table of missing functions")
	cmd.Flags().BoolVarP(&p.interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")

	return cmd
}

func addLintFlags(cmd *cobra.Command, p *lintParams) {
	cmd.Flags().StringVar(&p.configPath, "config", "",
		"path to config file (default: "+config.FileName+")")
	cmd.Flags().StringVar(&p.types, "types", "",
		"comma-separated vitest functions to report (default: all)")
	cmd.Flags().StringVar(&p.sourceType, "source-type", "",
		"force source type: module, script, or commonjs (default: by extension)")
}

// fixParams holds the parsed flags for the fix command.
type fixParams struct {
	lintParams
	dryRun bool
	stdout io.Writer
	stderr io.Writer
}

// runFix is the extracted, testable body of the fix command.
func runFix(p fixParams) error {
	results, _, err := lint(p.lintParams, true)
	if err != nil {
		return err
	}

	if p.dryRun {
		return report.WriteDiff(p.stdout, results)
	}

	fixed := 0
	for _, r := range results {
		if !r.Fixed() {
			continue
		}
		if err := writeFile(r.File, r.Output); err != nil {
			return err
		}
		fmt.Fprintf(p.stdout, "fixed: %s\n", r.File)
		fixed++
	}

	logger.Info("fix complete", "files", len(results), "fixed", fixed)
	fmt.Fprintf(p.stdout, "%d file(s) fixed\n", fixed)
	return nil
}

// writeFile replaces path's content, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func newFixCmd() *cobra.Command {
	var p fixParams

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Add missing vitest imports in place",
		Long: `Rewrite files so every vitest framework function they call is
bound by an import (module files) or require (script and CommonJS
files) of 'vitest'. An existing declaration is merged into.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.ctx = cmd.Context()
			p.paths = args
			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			return runFix(p)
		},
	}

	addLintFlags(cmd, &p.lintParams)
	cmd.Flags().BoolVar(&p.dryRun, "dry-run", false,
		"print a diff instead of writing files")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	var configSchema bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for vitestlint output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of vitestlint check --format=json output. With --config,
print the schema of the configuration file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := report.Schema
			if configSchema {
				schema = config.Schema()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), schema)
			return err
		},
	}

	cmd.Flags().BoolVar(&configSchema, "config", false,
		"print the configuration file schema")

	return cmd
}

// initParams holds the parsed flags for the init command.
type initParams struct {
	targetDir string
	force     bool
	stdout    io.Writer
}

// runInit is the extracted, testable body of the init command.
func runInit(p initParams) error {
	_, err := scaffold.Run(scaffold.Options{
		TargetDir: p.targetDir,
		Force:     p.force,
		Version:   version,
		Stdout:    p.stdout,
	})
	return err
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Long: `Write a commented default configuration file into the current
directory. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initParams{
				force:  force,
				stdout: cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite an existing config file")

	return cmd
}
