package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/canvas/internal/logging"
)

// DefaultSettle is how long the inbox waits after a file appears before
// reading it, so writers can finish.
const DefaultSettle = 500 * time.Millisecond

// Item is one captured file, ready to become a piece.
type Item struct {
	Path  string
	Title string // file name without extension
	JPEG  []byte
}

// Handler receives each captured item. An error is logged and the inbox
// keeps running.
type Handler func(ctx context.Context, item Item) error

// Inbox watches a directory and captures every new image file dropped
// into it. Hidden files and .tmp files are ignored.
type Inbox struct {
	Dir     string
	Encode  EncodeOptions
	Settle  time.Duration // 0 means DefaultSettle
	Handler Handler
	Logger  logrus.FieldLogger

	mu   sync.Mutex
	seen map[string]bool
}

// Run watches i.Dir until ctx is cancelled. It returns nil on
// cancellation and an error only if the watch cannot be set up.
func (i *Inbox) Run(ctx context.Context) error {
	if i.Handler == nil {
		return fmt.Errorf("inbox: nil handler")
	}
	log := i.logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(i.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", i.Dir, err)
	}
	i.mu.Lock()
	i.seen = make(map[string]bool)
	i.mu.Unlock()

	log.WithField("path", i.Dir).Info("inbox started")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			log.WithField("path", i.Dir).Info("inbox stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !i.accept(event) {
				continue
			}
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				i.process(ctx, name)
			}(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("inbox watcher error")
		}
	}
}

// accept filters events down to first sightings of new image files.
func (i *Inbox) accept(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return false
	}
	if !IsImageFile(name) {
		return false
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.seen[event.Name] {
		return false
	}
	i.seen[event.Name] = true
	return true
}

func (i *Inbox) process(ctx context.Context, path string) {
	log := i.logger().WithField("path", path)

	settle := i.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	select {
	case <-ctx.Done():
		return
	case <-time.After(settle):
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return
	}

	img, err := FileProvider{Path: path}.Capture(ctx)
	if err != nil {
		log.WithError(err).Warn("skipping unreadable image")
		return
	}
	data, err := Encode(img, i.Encode)
	if err != nil {
		log.WithError(err).Warn("skipping image")
		return
	}

	base := filepath.Base(path)
	item := Item{
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
		JPEG:  data,
	}
	if err := i.Handler(ctx, item); err != nil {
		log.WithError(err).Error("inbox handler failed")
		return
	}
	log.WithField("bytes", len(data)).Info("image captured")
}

func (i *Inbox) logger() *logrus.Entry {
	l := i.Logger
	if l == nil {
		l = logging.Discard()
	}
	return logging.WithComponent(l, "inbox")
}
