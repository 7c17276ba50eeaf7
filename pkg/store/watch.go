package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// coalesceWindow groups the writes of one burst into a single Event.
const coalesceWindow = 100 * time.Millisecond

// Event is emitted by Journal.Watch when a session gains records.
type Event struct {
	Session string
}

// Watch streams session change events until ctx is cancelled. Callers should
// drain the returned channel; events are dropped while the consumer lags. The
// channel is closed once ctx is done or the watcher fails.
func (j *Journal) Watch(ctx context.Context) (<-chan Event, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	sw := &sessionWatcher{
		j:       j,
		fw:      fw,
		logger:  j.logger.WithField("journal", j.basePath),
		dirty:   make(map[string]bool),
		watched: make(map[string]bool),
		out:     make(chan Event, 64),
	}
	if err := sw.addExisting(); err != nil {
		_ = fw.Close()
		return nil, err
	}
	go sw.run(ctx)
	return sw.out, nil
}

// sessionWatcher follows the two-level journal layout: the base directory
// holds one directory per session, each holding numbered record files.
// Everything runs on the goroutine started by Watch.
type sessionWatcher struct {
	j      *Journal
	fw     *fsnotify.Watcher
	logger log.FieldLogger

	watched map[string]bool
	dirty   map[string]bool
	out     chan Event
}

func (w *sessionWatcher) addExisting() error {
	if err := w.add(w.j.basePath); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.j.basePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: list sessions: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.add(filepath.Join(w.j.basePath, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (w *sessionWatcher) add(dir string) error {
	dir = filepath.Clean(dir)
	if w.watched[dir] {
		return nil
	}
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("store: watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	return nil
}

func (w *sessionWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer func() {
		if err := w.fw.Close(); err != nil {
			w.logger.WithError(err).Debug("journal watcher close")
		}
	}()

	ticker := time.NewTicker(coalesceWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.flush()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("journal watcher error")
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(evt)
		}
	}
}

func (w *sessionWatcher) handle(evt fsnotify.Event) {
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	session, isDir := w.classify(evt.Name)
	if session == "" {
		return
	}
	if isDir {
		// The first record may land before the watch is in place, so a new
		// session directory counts as a change on its own.
		if err := w.add(evt.Name); err != nil {
			w.logger.WithError(err).WithField("session", session).Warn("journal watch failed")
		}
	}
	w.dirty[session] = true
}

func (w *sessionWatcher) flush() {
	for session := range w.dirty {
		select {
		case w.out <- Event{Session: session}:
		default:
		}
		delete(w.dirty, session)
	}
}

// classify maps a path under the journal to its session. isDir is true for
// the session directory itself; other files that are not records are ignored.
func (w *sessionWatcher) classify(path string) (session string, isDir bool) {
	rel, err := filepath.Rel(w.j.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	switch len(parts) {
	case 1:
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return "", false
		}
		return parts[0], true
	case 2:
		if _, ok := seqFromFileName(parts[1]); ok {
			return parts[0], false
		}
	}
	return "", false
}
