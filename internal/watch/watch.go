// Package watch re-runs an analysis whenever its input file changes.
// Analysis tools writing MSD output rewrite the file while the simulation is
// still running; watch mode keeps the transport coefficients current without
// re-invoking msdiff by hand.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 100 * time.Millisecond

// File watches path and invokes run after every write, debounced. run is
// invoked once up front so the caller always gets an initial result. Returns
// when ctx is canceled.
func File(ctx context.Context, path string, log zerolog.Logger, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors and analysis tools replace files via
	// rename, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	name := filepath.Base(path)
	if err := run(); err != nil {
		log.Error().Err(err).Msg("analysis failed")
	}

	// Each pending timer holds one wg count, released either by its callback
	// or by whoever stops it first. Waiting on wg guarantees no run is still
	// executing after File returns.
	var mu sync.Mutex
	var wg sync.WaitGroup
	var debounce *time.Timer
	stopPending := func() {
		if debounce != nil && debounce.Stop() {
			wg.Done()
		}
	}
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		stopPending()
		wg.Add(1)
		debounce = time.AfterFunc(debounceDelay, func() {
			defer wg.Done()
			log.Info().Str("file", name).Msg("input changed, re-running analysis")
			if err := run(); err != nil {
				log.Error().Err(err).Msg("analysis failed")
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			stopPending()
			mu.Unlock()
			wg.Wait()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}
