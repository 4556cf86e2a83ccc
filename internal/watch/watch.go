// Package watch monitors a directory for new or rewritten log files and
// feeds them through the batch runner as they settle.
package watch

// #region imports
import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/testlog-resolver/internal/batch"
)

// #endregion

// #region watcher

// DefaultDebounce is how long a file must stay quiet before it is
// processed, absorbing editors and instruments that write in bursts.
const DefaultDebounce = 500 * time.Millisecond

// Watcher runs the batch pipeline on files as they appear in a directory.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	runner   *batch.Runner
	suffix   string
	log      *zap.Logger
	debounce time.Duration
	pending  map[string]*time.Timer
	done     chan struct{}
}

// NewWatcher creates a watcher over dir using the runner's options for
// output naming and scanning.
func NewWatcher(dir string, opts batch.Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = batch.DefaultSuffix
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fsw,
		dir:      dir,
		runner:   batch.NewRunner(opts),
		suffix:   suffix,
		log:      logger,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and blocks until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	defer w.watcher.Close()
	defer close(w.done)

	w.log.Info("watching", zap.String("dir", w.dir))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Done is closed when the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// #endregion

// #region event-handling

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if w.isOwnOutput(event.Name) {
		return
	}

	// Restart the debounce timer on every event for the same file; only a
	// quiet file gets processed.
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.process(path)
	})
}

func (w *Watcher) process(path string) {
	summary, _, err := w.runner.Run(path, "")
	if err != nil {
		w.log.Warn("process failed", zap.String("file", path), zap.Error(err))
		return
	}
	if summary.FilesProcessed == 0 {
		w.log.Debug("nothing to resolve", zap.String("file", path))
		return
	}
	w.log.Info("resolved",
		zap.String("file", path),
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("unchanged", summary.Unchanged))
}

func (w *Watcher) isOwnOutput(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, w.suffix)
}

// #endregion
