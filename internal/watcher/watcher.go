// Package watcher monitors the campaign audio directory and hands new
// recordings to a handler as they arrive.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one newly arrived audio file.
type Handler func(ctx context.Context, path string) error

// Watcher watches one directory for new audio files. Files are handled
// sequentially: the pipeline is a single-writer batch tool and its
// checkpoint files carry no locking.
type Watcher struct {
	dir     string
	handler Handler
	fsw     *fsnotify.Watcher
}

// New creates a watcher over the given directory.
func New(dir string, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{dir: dir, handler: handler, fsw: fsw}, nil
}

// Start blocks, handling audio files as they are created, until the
// context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	log.Printf("Watching %s for new audio files", w.dir)

	for {
		select {
		case <-ctx.Done():
			log.Println("Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) || !isAudioFile(event.Name) {
				continue
			}
			log.Printf("New audio file detected: %s", event.Name)

			// Give the writer a moment to finish the file.
			time.Sleep(500 * time.Millisecond)

			if err := w.handler(ctx, event.Name); err != nil {
				log.Printf("Error processing %s: %v", event.Name, err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m4a", ".mp3", ".wav", ".aac":
		return true
	}
	return false
}
