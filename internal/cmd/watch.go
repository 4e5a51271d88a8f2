package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/internal/observability"
	"github.com/DevSymphony/sym-jshint/internal/ui"
	"github.com/DevSymphony/sym-jshint/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Rescan JavaScript files as they change",
	Long: `Watch a project directory and rescan JavaScript files when they change.

Changes to the project's .jshintrc reload the configuration and rescan every
JavaScript file in the project. With --metrics-addr, Prometheus metrics are
served on /metrics and a health check on /health.`,
	Example: `  sym-jshint watch
  sym-jshint watch ./web --metrics-addr :9464`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchMetricsAddr string
	watchDebounce    time.Duration
)

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "address for /metrics and /health (default: watch.metrics_addr setting)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "delay before rescanning (default: watch.debounce setting)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := ""
	if len(args) == 1 {
		root = args[0]
	}
	a, err := newApp(ctx, root)
	if err != nil {
		return err
	}
	scan, err := a.scanFunc()
	if err != nil {
		return err
	}

	debounce := a.settings.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	metricsAddr := a.settings.Watch.MetricsAddr
	if watchMetricsAddr != "" {
		metricsAddr = watchMetricsAddr
	}

	if metricsAddr != "" {
		obs := observability.NewServer(metricsAddr, a.health, a.logger)
		obs.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = obs.Stop(shutdownCtx)
		}()
	}

	projectRoot := a.loader.ProjectRoot()
	session := &watchSession{app: a, scan: scan, out: cmd.OutOrStdout()}

	configName := filepath.Base(a.loader.ConfigPath())
	w, err := watcher.New(debounce, a.settings.Watch.ExcludeDirs, []string{configName}, func(paths []string) {
		session.handle(ctx, paths)
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetLogger(a.logger)
	defer w.Close()

	if err := w.Watch([]string{projectRoot}); err != nil {
		return fmt.Errorf("failed to watch %s: %w", projectRoot, err)
	}

	ui.PrintTitle("Watch", fmt.Sprintf("Watching %s (engine: %s)", projectRoot, a.inspector.EngineName()))
	session.rescanAll(ctx)

	<-ctx.Done()
	fmt.Println()
	ui.PrintDone("Stopped watching")
	return nil
}

// health reports the watch session state for /health.
func (a *app) health(context.Context) observability.HealthStatus {
	return observability.HealthStatus{
		Status:       "up",
		Engine:       a.inspector.EngineName(),
		ProjectRoot:  a.loader.ProjectRoot(),
		ConfigLoaded: a.loader.State().IsResolved(),
	}
}

// watchSession turns change batches into scans and printed reports.
type watchSession struct {
	app  *app
	scan linter.ScanFunc
	out  io.Writer
}

// handle rescans a batch of changed paths. A change to the project's config
// file reloads it and rescans the whole project; config files of the same
// name in subdirectories are ignored.
func (s *watchSession) handle(ctx context.Context, paths []string) {
	var changed []string
	configChanged := false
	configName := filepath.Base(s.app.loader.ConfigPath())

	for _, p := range paths {
		if filepath.Base(p) == configName {
			if s.app.inspector.HandleEvent(jshintrc.Event{Kind: jshintrc.DocumentRefreshed, Path: p}) {
				configChanged = true
			}
			continue
		}
		changed = append(changed, p)
	}

	if configChanged {
		ui.PrintInfo("Configuration changed, rescanning project")
		s.rescanAll(ctx)
		return
	}

	s.rescan(ctx, changed)
}

func (s *watchSession) rescanAll(ctx context.Context) {
	files, err := collectFiles([]string{s.app.loader.ProjectRoot()}, s.app.settings.Watch.ExcludeDirs)
	if err != nil {
		s.app.logger.Error("failed to list project files", "error", err)
		return
	}
	s.rescan(ctx, files)
}

func (s *watchSession) rescan(ctx context.Context, files []string) {
	report := &ui.Report{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.app.logger.Debug("file removed", "file", f)
				continue
			}
			s.app.logger.Warn("failed to read file", "file", f, "error", err)
			continue
		}
		report.Add(displayPath(f), s.scan(ctx, string(data), f))
	}

	if len(report.Files) == 0 {
		return
	}
	if err := ui.WriteReport(s.out, report, ui.FormatText); err != nil {
		s.app.logger.Error("failed to write report", "error", err)
	}
}
