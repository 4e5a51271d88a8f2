package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DevSymphony/sym-jshint/internal/git"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/internal/ui"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Lint JavaScript files with the project's .jshintrc",
	Long: `Scan JavaScript files (*.js, *.mjs, *.cjs, *.jsx) and print JSHint diagnostics.

Directories are walked recursively, skipping watch.exclude_dirs from the
settings. The .jshintrc of the project root (--root, default: current
directory) applies to every file. Exits non-zero when any error is found.`,
	Example: `  sym-jshint check
  sym-jshint check src/ lib/util.js --format json
  sym-jshint check --changed
  cat app.js | sym-jshint check --stdin --stdin-filename app.js`,
	RunE: runCheck,
}

var (
	checkFormat        string
	checkRoot          string
	checkStdin         bool
	checkStdinFilename string
	checkJobs          int
	checkChanged       bool
	checkStaged        bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", ui.FormatText, "output format (text, json, yaml)")
	checkCmd.Flags().StringVar(&checkRoot, "root", "", "project root holding .jshintrc (default: current directory)")
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "read source from stdin")
	checkCmd.Flags().StringVar(&checkStdinFilename, "stdin-filename", "stdin.js", "file name reported for --stdin")
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false, "only scan JavaScript files changed in git (including untracked)")
	checkCmd.Flags().BoolVar(&checkStaged, "staged", false, "only scan JavaScript files staged in git")
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", runtime.NumCPU(), "number of files scanned in parallel")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, checkRoot)
	if err != nil {
		return err
	}
	scan, err := a.scanFunc()
	if err != nil {
		return err
	}

	report := &ui.Report{}
	failed := false
	if checkStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		path := checkStdinFilename
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.loader.ProjectRoot(), path)
		}
		res := scan(ctx, string(data), path)
		report.Add(checkStdinFilename, res)
		failed = res.HasErrors()
	} else {
		var files []string
		if checkChanged || checkStaged {
			changes, err := git.ChangedFiles(ctx, a.loader.ProjectRoot(), checkStaged)
			if err != nil {
				return err
			}
			files = changedJavaScript(changes)
		} else {
			if len(args) == 0 {
				args = []string{a.loader.ProjectRoot()}
			}
			if files, err = collectFiles(args, a.settings.Watch.ExcludeDirs); err != nil {
				return err
			}
		}
		results, err := scanFiles(ctx, scan, files, checkJobs)
		if err != nil {
			return err
		}
		for i, f := range files {
			report.Add(displayPath(f), results[i])
		}
		failed = anyErrors(results)
	}

	if err := ui.WriteReport(cmd.OutOrStdout(), report, checkFormat); err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("found %d error(s)", report.Errors)
	}
	return nil
}

// collectFiles expands directories into the JavaScript files below them.
// Explicit file arguments are kept even if their extension is unusual.
func collectFiles(paths, excludeDirs []string) ([]string, error) {
	excludes := make([]glob.Glob, 0, len(excludeDirs))
	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && excluded(excludes, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if linter.LanguageForPath(path) == "javascript" {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// changedJavaScript keeps the JavaScript files among changes.
func changedJavaScript(changes []git.Change) []string {
	files := []string{}
	for _, c := range changes {
		if linter.LanguageForPath(c.Path) == "javascript" {
			files = append(files, c.Path)
		}
	}
	return files
}

func excluded(patterns []glob.Glob, name string) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// scanFiles scans files with at most jobs scans in flight. Results are in
// the order of files.
func scanFiles(ctx context.Context, scan linter.ScanFunc, files []string, jobs int) ([]*schema.ScanResult, error) {
	results := make([]*schema.ScanResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, f := range files {
		g.Go(func() error {
			data, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f, err)
			}
			results[i] = scan(ctx, string(data), f)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// anyErrors reports whether any result carries an error diagnostic.
func anyErrors(results []*schema.ScanResult) bool {
	for _, res := range results {
		if res.HasErrors() {
			return true
		}
	}
	return false
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || filepath.IsAbs(rel) || len(rel) >= len(path) {
		return path
	}
	return rel
}
