package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/trackerview/internal/diff"
	"github.com/hupe1980/trackerview/internal/view"
)

// RunFunc reloads the dataset and renders the view once.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult summarizes one pipeline run.
type RunResult struct {
	Stats      view.Stats
	Visibility diff.Visibility
}

// Options configures Run.
type Options struct {
	// Files are the files to watch, typically the dataset and the config
	// file. Their parent directories are watched so that editors replacing
	// a file by rename are still observed.
	Files []string

	// Debounce is the quiet period before re-running.
	Debounce time.Duration

	Logger *slog.Logger

	// Out receives one status line per run.
	Out io.Writer
}

// DefaultOptions returns the default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 300 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run performs an initial run, then re-runs runFn after changes to any of
// the watched files. It blocks until ctx is cancelled or SIGINT/SIGTERM is
// received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to watch")
	}

	targets, dirs, err := resolve(opts.Files)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range sets.List(dirs) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Files, ", "), opts.Debounce)

	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(paths []string) {
		doRun(sigCtx, opts, runFn, strings.Join(paths, ", "))
	})
	debouncer.logger = opts.Logger

	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			_, _ = fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, targets) {
				continue
			}

			opts.Logger.Debug("file event", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			debouncer.Trigger(filepath.Clean(event.Name))

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	_, _ = fmt.Fprintf(opts.Out, "[%s] %s → OK (%d rows, %d shown, %d hidden)\n",
		now, trigger, result.Stats.Total, result.Stats.Shown, result.Stats.Hidden)

	if !result.Visibility.Empty() {
		_, _ = fmt.Fprintf(opts.Out, "  visibility: +%d revealed, -%d hidden\n",
			len(result.Visibility.Revealed), len(result.Visibility.Hidden))
	}
}

// resolve returns the absolute target paths and their parent directories.
func resolve(files []string) (sets.Set[string], sets.Set[string], error) {
	targets := sets.New[string]()
	dirs := sets.New[string]()

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		if _, err := os.Stat(abs); err != nil {
			return nil, nil, fmt.Errorf("watching file %s: %w", abs, err)
		}

		targets.Insert(abs)
		dirs.Insert(filepath.Dir(abs))
	}

	return targets, dirs, nil
}

// isRelevant keeps content-changing events on one of the target files.
func isRelevant(event fsnotify.Event, targets sets.Set[string]) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return targets.Has(abs)
}
