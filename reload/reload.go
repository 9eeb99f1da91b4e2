// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reload reports changes to a file so that resources built from
// it, such as shaders, can be rebuilt while a program is running.
package reload

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default time a file must stay unchanged
// before a change is reported. Editors often write a file in
// several steps, each of which raises its own event.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file for changes. The events are received on
// a background goroutine, which only records that the file changed; the
// owner of the resource checks [Watcher.Poll] and rebuilds it on its own
// thread.
type Watcher struct {

	// Path is the cleaned path of the watched file.
	Path string

	// Debounce is the time the file must stay unchanged
	// before a change is reported.
	Debounce time.Duration

	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New starts watching the file at path. The directory containing it is
// watched, so that changes made by replacing the file are seen too.
// A debounce of 0 uses [DefaultDebounce].
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("reload: watching %q: %w", path, err)
	}
	w := &Watcher{
		Path:     abs,
		Debounce: debounce,
		watcher:  fw,
		changed:  make(chan string, 1),
		done:     make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Poll returns whether the file has changed since the last call,
// without blocking.
func (w *Watcher) Poll() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Close stops watching the file.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) watch() {
	events := w.watcher.Events
	errs := w.watcher.Errors
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-errs:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "path", w.Path, "err", err)
		}
	}
}

// schedule reports the change once no other change
// has been seen for the debounce time.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Reset(w.Debounce)
		return
	}
	w.timer = time.AfterFunc(w.Debounce, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
		return
	default:
	}
	slog.Debug("file changed", "path", w.Path)
	select {
	case w.changed <- w.Path:
	default: // a change is already pending
	}
}
