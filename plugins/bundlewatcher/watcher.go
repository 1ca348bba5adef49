// Package bundlewatcher resends a bundled resource whenever its file
// changes on disk. It watches the bundle directory with fsnotify and
// debounces bursts of writes into a single send.
package bundlewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/beacon/internal/adapters/fs"
	"github.com/bft-labs/beacon/internal/domain"
	"github.com/bft-labs/beacon/pkg/log"
)

// Dispatcher sends a bundled resource and reports the outcome.
// *app.Controller satisfies this interface.
type Dispatcher interface {
	SendResource(ctx context.Context, name string) <-chan domain.Result
}

// Config holds configuration options for the watcher.
type Config struct {
	// Dir is the bundle directory to watch.
	Dir string

	// Resource is the resource name, with or without the .json suffix.
	Resource string

	// DebounceDelay is the delay to wait after a file change before sending.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// SendOnStart sends the resource once before waiting for changes.
	SendOnStart bool
}

// Watcher watches a bundle directory and resends one resource on change.
type Watcher struct {
	dir         string
	resource    string
	file        string
	debounce    time.Duration
	sendOnStart bool
	dispatcher  Dispatcher
	logger      log.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

// New creates a watcher. It does not touch the file system until Run.
func New(cfg Config, dispatcher Dispatcher, logger log.Logger) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("bundle watcher: a bundle directory is required")
	}
	if cfg.Resource == "" {
		return nil, errors.New("bundle watcher: a resource name is required")
	}
	if dispatcher == nil {
		return nil, errors.New("bundle watcher: dispatcher is nil")
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	file := fs.ResourceFile(cfg.Resource)
	return &Watcher{
		dir:         filepath.Join(cfg.Dir, filepath.Dir(file)),
		resource:    cfg.Resource,
		file:        filepath.Base(file),
		debounce:    cfg.DebounceDelay,
		sendOnStart: cfg.SendOnStart,
		dispatcher:  dispatcher,
		logger:      logger,
	}, nil
}

// Run watches until ctx is cancelled, then waits for in-flight sends.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	defer w.stop()

	w.logger.Info("watching bundle",
		log.String("dir", w.dir),
		log.String("file", w.file),
		log.Duration("debounce", w.debounce),
	)

	if w.sendOnStart {
		w.start(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("resource changed", log.String("event", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("bundle watcher error", log.Err(err))
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.start(ctx) })
}

// start runs one send on its own goroutine unless the watcher is stopping.
func (w *Watcher) start(ctx context.Context) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		w.send(ctx)
	}()
}

// send dispatches the resource once. Failures are logged and not retried.
func (w *Watcher) send(ctx context.Context) {
	res := <-w.dispatcher.SendResource(ctx, w.resource)

	switch {
	case res.Kind == domain.ResultBusy:
		w.logger.Warn("skipped resend, a send is already in flight", log.String("resource", w.resource))
	case res.Failed():
		w.logger.Error("resend failed", log.String("resource", w.resource), log.String("result", res.String()))
	default:
		w.logger.Info("resent resource", log.String("resource", w.resource), log.Int("status", res.StatusCode))
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
}
