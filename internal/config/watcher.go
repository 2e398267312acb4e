package config

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a profile overlay file for changes and reloads it.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.RWMutex
	profile  Profile
	handlers []func(Profile)
	done     chan struct{}
}

// NewWatcher creates a watcher over the overlay at path and loads the
// initial merged profile.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	profile, err := LoadOverlay(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	pw := &Watcher{
		path:    path,
		watcher: w,
		profile: profile,
		done:    make(chan struct{}),
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	return pw, nil
}

// Start starts watching for overlay file changes.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

// OnReload registers a handler called with the merged profile whenever
// the overlay is reloaded.
func (w *Watcher) OnReload(handler func(Profile)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the current merged profile.
func (w *Watcher) Get() Profile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.profile
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Reload on write or create (some editors do atomic saves via rename)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Profile watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	profile, err := LoadOverlay(w.path)
	if err != nil {
		log.Printf("Failed to reload profile overlay: %v", err)
		return
	}

	w.mu.Lock()
	w.profile = profile
	handlers := make([]func(Profile), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("Profile overlay reloaded from %s", w.path)

	for _, handler := range handlers {
		handler(profile)
	}
}
