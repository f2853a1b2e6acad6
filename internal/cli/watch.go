package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/VyankateshD206/aiobs/pkg/export"
)

// watchStability is how long a new artifact must sit unchanged before it
// is read, so a flush in progress is not picked up mid-rename.
const watchStability = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory for new export artifacts",
	Long:  `Watch an export directory and validate and summarize every new artifact as it appears. Defaults to the configured export dir. Runs until interrupted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := cfg.Export.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s for export artifacts\n", dir)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var timersMu sync.Mutex
	timers := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isArtifact(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// Debounce: coalesce write bursts per artifact path.
			timersMu.Lock()
			if t, exists := timers[event.Name]; exists {
				t.Stop()
			}
			path := event.Name
			timers[path] = time.AfterFunc(watchStability, func() {
				timersMu.Lock()
				delete(timers, path)
				timersMu.Unlock()
				reportArtifact(out, path)
			})
			timersMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Watcher error")

		case <-stop:
			fmt.Fprintln(out, "Stopping watch")
			return nil
		}
	}
}

func reportArtifact(out interface{ Write([]byte) (int, error) }, path string) {
	if err := export.ValidateFile(path); err != nil {
		fmt.Fprintf(out, "INVALID  %s: %v\n", path, err)
		return
	}

	artifact, err := readArtifact(path)
	if err != nil {
		fmt.Fprintf(out, "INVALID  %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(out, "OK       %s  sessions=%d events=%d\n",
		path, len(artifact.Sessions), len(artifact.Events))
}

func isArtifact(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "aiobs-") && strings.HasSuffix(base, ".json")
}
