// Package notify publishes debounced file-change events from the
// operating system's file-system notifications onto the event bus. It
// is the external change source the index watcher subscribes to.
package notify

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"codemap/internal/adapter/fs"
	"codemap/internal/domain"
	"codemap/internal/event"
)

// DefaultDebounce coalesces editor save bursts into one event.
const DefaultDebounce = 500 * time.Millisecond

const flushInterval = 100 * time.Millisecond

// Notifier watches a directory tree recursively and publishes
// added/changed/deleted events for files with a recognized language.
type Notifier struct {
	bus      *event.Bus
	walker   *fs.Walker
	root     string
	debounce time.Duration

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc

	mu      sync.Mutex
	pending map[string]pendingChange
}

type pendingChange struct {
	op   event.Op
	when time.Time
}

// New creates a Notifier. The walker supplies the ignore patterns so
// watch filtering matches index filtering.
func New(bus *event.Bus, root string, walker *fs.Walker, debounce time.Duration) (*Notifier, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	root, err = filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	return &Notifier{
		bus:      bus,
		walker:   walker,
		root:     root,
		debounce: debounce,
		watcher:  watcher,
		pending:  make(map[string]pendingChange),
	}, nil
}

// Start begins watching. It returns once the directory tree has been
// registered; events flow on the bus until ctx is cancelled or Close
// is called.
func (n *Notifier) Start(ctx context.Context) error {
	if err := n.addRecursive(n.root); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	go n.processEvents(ctx)
	go n.flushPending(ctx)
	return nil
}

// Close stops watching and releases the OS watch handles.
func (n *Notifier) Close() error {
	if n.cancel != nil {
		n.cancel()
	}
	return n.watcher.Close()
}

// addRecursive registers dir and every non-ignored subdirectory.
func (n *Notifier) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if rel := n.rel(path); rel != "." && n.walker.Ignored(rel+"/") {
			return filepath.SkipDir
		}
		// Watch registration failures on single directories are
		// non-fatal; events from elsewhere still flow.
		_ = n.watcher.Add(path)
		return nil
	})
}

func (n *Notifier) rel(path string) string {
	rel, err := filepath.Rel(n.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (n *Notifier) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			n.handleEvent(ev)

		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (n *Notifier) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if n.relevant(ev.Name) {
			n.bus.PublishFile(event.FileEvent{Op: event.OpDeleted, Path: ev.Name})
		}
		return
	}

	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = n.addRecursive(ev.Name)
			return
		}
		n.enqueue(ev.Name, event.OpAdded)
		return
	}

	if ev.Op&fsnotify.Write != 0 {
		n.enqueue(ev.Name, event.OpChanged)
	}
}

func (n *Notifier) relevant(path string) bool {
	if fs.DetectLanguage(path) == domain.LangUnknown {
		return false
	}
	return !n.walker.Ignored(n.rel(path))
}

func (n *Notifier) enqueue(path string, op event.Op) {
	if !n.relevant(path) {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if prev, ok := n.pending[path]; ok && prev.op == event.OpAdded {
		// A create followed by writes is still one add.
		op = event.OpAdded
	}
	n.pending[path] = pendingChange{op: op, when: time.Now()}
}

// flushPending publishes changes that have been quiet for the
// debounce window.
func (n *Notifier) flushPending(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			n.mu.Lock()
			var ready []event.FileEvent
			for path, change := range n.pending {
				if now.Sub(change.when) < n.debounce {
					continue
				}
				delete(n.pending, path)
				ev := event.FileEvent{Op: change.op, Path: path}
				if info, err := os.Stat(path); err == nil {
					ev.ModTime = info.ModTime().Unix()
				}
				ready = append(ready, ev)
			}
			n.mu.Unlock()

			for _, ev := range ready {
				n.bus.PublishFile(ev)
			}
		}
	}
}
