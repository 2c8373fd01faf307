package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/notify"
	"codemap/internal/event"
	"codemap/internal/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Keep the index live and stream updates",
	Long: `Build the index, then watch the directory tree for file changes and
apply them incrementally. Each applied change is printed as it lands.
Runs until interrupted.

Example:
  codemap watch .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	c := GetConfig()

	fmt.Printf("Scanning %s...\n", path)
	idx := newIndex()
	result, err := idx.Build(path, progressCallback())
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	fmt.Printf("Indexed %d files, %d symbols. Watching for changes...\n",
		result.FilesIndexed, result.TotalSymbols)

	bus := event.NewBus()
	defer bus.Close()

	// Updates channel must exist before the watcher starts publishing.
	updates := bus.SubscribeIndex()

	walker := fs.NewWalker(c.Index.Excludes)
	debounce := time.Duration(c.Watch.DebounceMS) * time.Millisecond
	notifier, err := notify.New(bus, path, walker, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer notifier.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := notifier.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	watcher := usecase.NewWatcher(idx, bus, logger)
	go watcher.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopping.")
			return nil

		case u, ok := <-updates:
			if !ok {
				return nil
			}
			fmt.Printf("%s  %-7s %s\n",
				u.Time.Format("15:04:05"),
				u.Op,
				pathStyle.Render(u.Path),
			)
		}
	}
}
