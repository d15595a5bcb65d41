package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentlint/pkg/lint"
	"github.com/jingkaihe/agentlint/pkg/logger"
	"github.com/jingkaihe/agentlint/pkg/presenter"
)

// BatchConfig holds configuration for the batch command
type BatchConfig struct {
	Pattern      string
	IgnoreDirs   []string
	Watch        bool
	DebounceTime int
}

// NewBatchConfig creates a BatchConfig with default values
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{
		Pattern:      "**/*.md",
		IgnoreDirs:   []string{".git", "node_modules"},
		Watch:        false,
		DebounceTime: 500,
	}
}

// Validate validates the BatchConfig and returns an error if invalid
func (c *BatchConfig) Validate() error {
	if !doublestar.ValidatePattern(c.Pattern) {
		return errors.Errorf("invalid pattern: %s", c.Pattern)
	}
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Validate every agent definition under a directory",
	Long: `Validate every agent definition file under a directory, then print a
per-file summary. The exit code is 1 if any file has hard failures.

With --watch, re-validates files as they change until interrupted.

Examples:
  agentlint batch agents
  agentlint batch . --pattern 'agents/**/*.md'
  agentlint batch agents --watch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getBatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		root := args[0]
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			presenter.Error(errors.Errorf("not a directory: %s", root), "Invalid directory")
			os.Exit(1)
		}

		if config.Watch {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				presenter.Warning("Cancellation requested, shutting down...")
				cancel()
			}()

			runBatch(ctx, root, config)
			runBatchWatch(ctx, root, config)
			return
		}

		if !runBatch(cmd.Context(), root, config) {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewBatchConfig()
	batchCmd.Flags().StringP("pattern", "p", defaults.Pattern, "Glob pattern for agent files, relative to the directory")
	batchCmd.Flags().StringSliceP("ignore", "i", defaults.IgnoreDirs, "Directories to ignore")
	batchCmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate files as they change")
	batchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
	rootCmd.AddCommand(batchCmd)
}

// getBatchConfigFromFlags extracts batch configuration from command flags
func getBatchConfigFromFlags(cmd *cobra.Command) *BatchConfig {
	config := NewBatchConfig()

	if pattern, err := cmd.Flags().GetString("pattern"); err == nil {
		config.Pattern = pattern
	}
	if ignoreDirs, err := cmd.Flags().GetStringSlice("ignore"); err == nil {
		config.IgnoreDirs = ignoreDirs
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}

	return config
}

// runBatch validates every matching file once and prints the summary table.
// It returns true when every file passed.
func runBatch(ctx context.Context, root string, config *BatchConfig) bool {
	files, err := collectAgentFiles(root, config.Pattern, config.IgnoreDirs)
	if err != nil {
		presenter.Error(err, "Failed to collect agent files")
		return false
	}
	if len(files) == 0 {
		presenter.Warning(fmt.Sprintf("No agent files matching '%s' under %s", config.Pattern, root))
		return true
	}

	linter := lint.New()
	var result *multierror.Error
	type row struct {
		path     string
		errors   int
		warnings int
	}
	rows := make([]row, 0, len(files))

	for _, path := range files {
		presenter.Section(fmt.Sprintf("Validating %s", path))
		report := linter.LintPath(ctx, path)
		presenter.Report(report)
		presenter.Separator()

		rows = append(rows, row{path: path, errors: report.Errors, warnings: report.Warnings})
		if !report.OK() {
			result = multierror.Append(result, errors.Errorf("%s: %d error(s)", path, report.Errors))
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tERRORS\tWARNINGS\tSTATUS")
	for _, r := range rows {
		status := "pass"
		if r.errors > 0 {
			status = "fail"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.path, r.errors, r.warnings, status)
	}
	tw.Flush()

	if err := result.ErrorOrNil(); err != nil {
		presenter.Error(err, "Validation failed")
		return false
	}
	presenter.Success(fmt.Sprintf("All %d file(s) passed", len(files)))
	return true
}

// collectAgentFiles returns the files under root matching pattern, sorted,
// with ignored directories skipped.
func collectAgentFiles(root, pattern string, ignoreDirs []string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to glob '%s'", pattern)
	}

	var files []string
	for _, path := range matches {
		if inIgnoredDir(path, ignoreDirs) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func inIgnoredDir(path string, ignoreDirs []string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		for _, ignore := range ignoreDirs {
			if part == ignore {
				return true
			}
		}
	}
	return false
}

// runBatchWatch re-validates matching files as they change, until the
// context is cancelled.
func runBatchWatch(ctx context.Context, root string, config *BatchConfig) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		logger.G(ctx).WithError(err).Fatal("Failed to create file watcher")
	}
	defer watcher.Close()

	events := make(chan string)
	go debounceFileEvents(ctx, watcher, events, config, root)

	// Watch root and subdirectories, skipping ignored ones.
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		for _, ignore := range config.IgnoreDirs {
			if info.Name() == ignore {
				return filepath.SkipDir
			}
		}
		logger.G(ctx).WithField("directory", path).Debug("Adding directory to watcher")
		return watcher.Add(path)
	})
	if err != nil {
		presenter.Error(err, "Failed to watch directories")
		logger.G(ctx).WithError(err).Fatal("Failed to watch directories")
	}

	presenter.Info("Watching for file changes... Press Ctrl+C to stop")

	linter := lint.New()
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return
			}
			presenter.Section(fmt.Sprintf("Validating %s", path))
			report := linter.LintPath(ctx, path)
			presenter.Report(report)
			presenter.Separator()
		case <-ctx.Done():
			return
		}
	}
}

// debounceFileEvents forwards write/create events for matching files,
// collapsing rapid changes to the same file into one event.
func debounceFileEvents(ctx context.Context, watcher *fsnotify.Watcher, output chan<- string, config *BatchConfig, root string) {
	delay := time.Duration(config.DebounceTime) * time.Millisecond
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := event.Name
			if inIgnoredDir(path, config.IgnoreDirs) {
				continue
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			matched, err := doublestar.Match(config.Pattern, filepath.ToSlash(rel))
			if err != nil || !matched {
				continue
			}

			if timer, exists := pending[path]; exists {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(delay, func() {
				select {
				case output <- path:
				case <-ctx.Done():
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			presenter.Error(err, "File watcher error")
			logger.G(ctx).WithError(err).Error("Error watching files")
		case <-ctx.Done():
			return
		}
	}
}
