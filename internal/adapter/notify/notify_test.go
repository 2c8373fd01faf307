package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codemap/internal/adapter/fs"
	"codemap/internal/event"
)

func startNotifier(t *testing.T) (string, <-chan event.FileEvent) {
	t.Helper()
	root := t.TempDir()
	bus := event.NewBus()
	t.Cleanup(bus.Close)
	sub := bus.SubscribeFiles()

	n, err := New(bus, root, fs.NewWalker(nil), 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { n.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := n.Start(ctx); err != nil {
		t.Fatal(err)
	}
	return root, sub
}

func waitFor(t *testing.T, sub <-chan event.FileEvent, name string, op event.Op) event.FileEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-sub:
			if filepath.Base(ev.Path) == name && ev.Op == op {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %s event for %s", op, name)
		}
	}
}

func TestNotifier_PublishesAdd(t *testing.T) {
	root, sub := startNotifier(t)

	path := filepath.Join(root, "new.go")
	if err := os.WriteFile(path, []byte("package new\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitFor(t, sub, "new.go", event.OpAdded)
	if ev.ModTime == 0 {
		t.Error("add event should carry the file mod time")
	}
}

func TestNotifier_CoalescesWriteBurst(t *testing.T) {
	root, sub := startNotifier(t)

	path := filepath.Join(root, "burst.go")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("package burst\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The create followed by writes within the debounce window lands as
	// a single add.
	waitFor(t, sub, "burst.go", event.OpAdded)

	select {
	case ev := <-sub:
		if filepath.Base(ev.Path) == "burst.go" {
			t.Errorf("burst should coalesce to one event, got extra %+v", ev)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNotifier_PublishesDelete(t *testing.T) {
	root, sub := startNotifier(t)

	path := filepath.Join(root, "gone.go")
	if err := os.WriteFile(path, []byte("package gone\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, sub, "gone.go", event.OpAdded)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, sub, "gone.go", event.OpDeleted)
}

func TestNotifier_SkipsUnknownExtensions(t *testing.T) {
	root, sub := startNotifier(t)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	// Positive control: a source file written afterwards must arrive
	// while the text file never does.
	if err := os.WriteFile(filepath.Join(root, "control.go"), []byte("package c\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitFor(t, sub, "control.go", event.OpAdded)
	if filepath.Base(ev.Path) != "control.go" {
		t.Errorf("unexpected event %+v", ev)
	}
}
