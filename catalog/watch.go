package catalog

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports which entries of a data directory changed on disk.
// The render loop polls it with Drain since GL resources may only be
// touched from the thread owning the context.
type Watcher struct {
	w       *fsnotify.Watcher
	dir     string
	entries []Entry

	mu      sync.Mutex
	pending map[int]struct{}
	err     error
	done    chan struct{}
}

// NewWatcher starts watching the vertices and indices directories under dir.
func NewWatcher(dir string, entries []Entry) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("embedded catalog can not be watched, need a data directory")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, sub := range []string{"vertices", "indices"} {
		if err = fw.Add(filepath.Join(dir, sub)); err != nil {
			fw.Close()
			return nil, err
		}
	}
	w := &Watcher{
		w:       fw,
		dir:     dir,
		entries: entries,
		pending: make(map[int]struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			idx := w.entryIndex(ev.Name)
			if idx < 0 {
				continue
			}
			w.mu.Lock()
			w.pending[idx] = struct{}{}
			w.mu.Unlock()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			if w.err == nil {
				w.err = err
			}
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) entryIndex(name string) int {
	rel, err := filepath.Rel(w.dir, name)
	if err != nil {
		return -1
	}
	rel = filepath.ToSlash(rel)
	for i, e := range w.entries {
		if rel == e.VerticesPath || rel == e.IndicesPath {
			return i
		}
	}
	return -1
}

// Drain returns the indices of entries modified since the last call, in
// ascending order. It never blocks.
func (w *Watcher) Drain() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	changed := make([]int, 0, len(w.pending))
	for idx := range w.pending {
		changed = append(changed, idx)
	}
	w.pending = make(map[int]struct{})
	sort.Ints(changed)
	return changed
}

// Err returns the first error reported by the underlying watcher.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
