package envfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/watchhub/envctl/pkg/log"
)

// WatchDebounce is how long Watch waits for a burst of events to settle.
const WatchDebounce = 150 * time.Millisecond

// Watch calls onChange whenever the file at path is written, created,
// removed or renamed, until ctx is done. The parent directory is watched so
// editors that replace the file are still seen.
func Watch(ctx context.Context, path string, onChange func()) error {
	logger := log.FromContext(ctx).WithComponent("watch")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Debug("Watching env file", log.Str("path", target))

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				logger.Debug("Env file changed", log.Str("op", ev.Op.String()))
				settle = time.After(WatchDebounce)
			}

		case <-settle:
			settle = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", log.Err(err))
		}
	}
}
