package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RATIU5/zaggonaut/internal/logger"
)

// DefaultDebounce is how long Watch waits after the last change before
// calling rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Watch recursively watches roots and calls rebuild once changes settle.
// Rebuilds run one at a time on a single goroutine; changes arriving
// during a rebuild queue at most one more. Missing roots are skipped.
// Directories created later are added as they appear. Watch blocks until
// ctx is done.
func Watch(ctx context.Context, roots []string, debounce time.Duration, rebuild func(), log logger.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			log.Warn("not watching missing directory", logger.String("dir", root))
			continue
		}
		addTree(watcher, root, log)
	}

	pending := make(chan struct{}, 1)
	requestRebuild := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}

	var wg sync.WaitGroup
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer wg.Wait()
	defer stopWorker()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-pending:
				rebuild()
			}
		}
	}()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("change detected", logger.String("path", event.Name), logger.String("op", event.Op.String()))

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addTree(watcher, event.Name, log)
				}
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, requestRebuild)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", logger.Err(err))
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string, log logger.Logger) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("walk watched directory", logger.String("path", path), logger.Err(err))
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				log.Warn("watch directory", logger.String("path", path), logger.Err(err))
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("walk watched tree", logger.String("root", root), logger.Err(err))
	}
}
