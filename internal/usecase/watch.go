package usecase

import (
	"context"
	"log/slog"
	"time"

	"codemap/internal/event"
)

// Watcher applies file-change events from the bus to the index and
// announces each applied change as an index update. It is the single
// writer for the index while running.
type Watcher struct {
	index *Index
	bus   *event.Bus
	log   *slog.Logger
}

// NewWatcher wires a Watcher over an already built index.
func NewWatcher(index *Index, bus *event.Bus, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{index: index, bus: bus, log: log}
}

// Run consumes file events until ctx is cancelled or the bus closes.
// A failed re-parse is logged and the event dropped; the index keeps
// its previous entry for the file, so one unreadable save never stops
// the watch loop.
func (w *Watcher) Run(ctx context.Context) {
	events := w.bus.SubscribeFiles()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			w.apply(ev)
		}
	}
}

func (w *Watcher) apply(ev event.FileEvent) {
	switch ev.Op {
	case event.OpAdded:
		// Create events can replay for files the initial build already
		// picked up; a change event will follow if the content moved.
		if w.index.ContainsFile(ev.Path) {
			return
		}
		w.applyChange(event.OpAdded, ev.Path)

	case event.OpChanged:
		w.applyChange(event.OpChanged, ev.Path)

	case event.OpDeleted:
		w.index.RemoveFile(ev.Path)
		w.publish(event.OpDeleted, ev.Path)
	}
}

func (w *Watcher) applyChange(op event.Op, path string) {
	if err := w.index.UpdateFile(path); err != nil {
		w.log.Warn("failed to update index", "path", path, "error", err)
		return
	}
	w.publish(op, path)
}

func (w *Watcher) publish(op event.Op, path string) {
	w.bus.PublishIndex(event.IndexUpdate{Path: path, Op: op, Time: time.Now()})
}
