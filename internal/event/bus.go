package event

import (
	"sync"
	"time"
)

// Op names a file-change or index-update operation.
type Op string

const (
	OpAdded   Op = "added"
	OpChanged Op = "changed"
	OpDeleted Op = "deleted"
)

// FileEvent is one discrete file-system change delivered by the
// notification source. At least one event arrives per change; no
// ordering or de-duplication is guaranteed.
type FileEvent struct {
	Op      Op
	Path    string
	ModTime int64
}

// IndexUpdate announces that the index incorporated a file change,
// for downstream consumers such as the context assembler.
type IndexUpdate struct {
	Path string
	Op   Op
	Time time.Time
}

const subscriberBuffer = 128

// Bus is a small in-process pub/sub hub connecting the file-change
// source, the index watcher and any index-update consumers. Publishing
// never blocks: a subscriber that falls behind its buffer drops
// events.
type Bus struct {
	mu        sync.Mutex
	fileSubs  []chan FileEvent
	indexSubs []chan IndexUpdate
	closed    bool
}

// NewBus creates a Bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeFiles registers a consumer of file-change events.
func (b *Bus) SubscribeFiles() <-chan FileEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan FileEvent, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.fileSubs = append(b.fileSubs, ch)
	return ch
}

// SubscribeIndex registers a consumer of index-update events.
func (b *Bus) SubscribeIndex() <-chan IndexUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan IndexUpdate, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.indexSubs = append(b.indexSubs, ch)
	return ch
}

// PublishFile delivers a file-change event to all subscribers.
func (b *Bus) PublishFile(e FileEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.fileSubs {
		select {
		case ch <- e:
		default:
		}
	}
}

// PublishIndex delivers an index-update event to all subscribers.
func (b *Bus) PublishIndex(e IndexUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.indexSubs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close closes all subscriber channels. Further publishes are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.fileSubs {
		close(ch)
	}
	for _, ch := range b.indexSubs {
		close(ch)
	}
	b.fileSubs = nil
	b.indexSubs = nil
}
