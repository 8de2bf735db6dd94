package hostsfile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maksimkurb/hostfile/src/internal/errors"
	"github.com/maksimkurb/hostfile/src/internal/hashing"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

// ChangeEvent reports new content of a watched file.
type ChangeEvent struct {
	Path string
	// Checksum is the MD5 of the new content, empty when Removed.
	Checksum string
	Removed  bool
}

// Watch emits an event each time the content of path changes. The parent
// directory is watched so that atomic replacements are seen. Bursts of
// filesystem events are coalesced for debounce and events that leave the
// content unchanged are dropped. The channel is closed when ctx ends.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan ChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewWatchError("failed to resolve "+path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewWatchError("failed to create file watcher", err)
	}
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, errors.NewWatchError("failed to watch "+dir, err)
	}

	last, _ := hashing.FileChecksum(absPath)
	events := make(chan ChangeEvent)

	go func() {
		defer close(events)
		defer watcher.Close()

		// Armed by the first relevant event.
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				absEvent, _ := filepath.Abs(event.Name)
				if absEvent != absPath || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				log.Debugf("fsnotify event: Name='%s', Op=%v", event.Name, event.Op)
				timer.Reset(debounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("File watch error: %v", err)
			case <-timer.C:
				change := ChangeEvent{Path: absPath}
				sum, err := hashing.FileChecksum(absPath)
				if err != nil {
					change.Removed = true
				} else {
					change.Checksum = sum
				}
				if sum == last {
					continue
				}
				last = sum

				select {
				case events <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
