// Package watcher notices out-of-band modifications to the active OpenCV
// installation. A stray `make install` that overwrites headers or
// libraries silently invalidates the version cvswitch believes is active;
// the watcher journals such changes so the operator knows to re-save
// before the next switch.
package watcher

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/cvswitch/internal/store"
)

// debounceWindow batches the event storm a recursive copy produces into a
// single journal entry. Variable so tests can shrink it.
var debounceWindow = 2 * time.Second

// maxDetailPaths caps how many changed paths one journal entry names.
const maxDetailPaths = 5

// Watcher tails filesystem events on the active installation directories
// and journals external changes into the event store.
type Watcher struct {
	store   *store.Store
	version string
	dirs    []string

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	// onRecord, when set, observes each journaled batch. Tests hook it.
	onRecord func(paths []string)
}

// New creates a Watcher over the given directories for the currently
// active version.
func New(st *store.Store, version string, dirs []string) (*Watcher, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directories to watch")
	}
	return &Watcher{
		store:   st,
		version: version,
		dirs:    dirs,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start registers the watched directories and begins collecting events.
// Directories that do not exist are skipped with a warning; at least one
// must be watchable.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	w.fsw = fsw

	watched := 0
	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: cannot watch %s: %v\n", dir, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return fmt.Errorf("none of the installation directories could be watched")
	}

	w.wg.Add(1)
	go w.run()

	return nil
}

// run collects events, debounces them, and journals each batch.
func (w *Watcher) run() {
	defer w.wg.Done()

	var pending []string
	var flush <-chan time.Time

	record := func() {
		if len(pending) == 0 {
			return
		}
		w.recordBatch(pending)
		pending = nil
		flush = nil
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				record()
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = append(pending, ev.Name)
			flush = time.After(debounceWindow)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				record()
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)

		case <-flush:
			record()

		case <-w.stopCh:
			record()
			return
		}
	}
}

// recordBatch journals one debounced batch of changed paths.
func (w *Watcher) recordBatch(paths []string) {
	uniq := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		uniq[p] = struct{}{}
	}
	names := make([]string, 0, len(uniq))
	for p := range uniq {
		names = append(names, p)
	}
	sort.Strings(names)

	detail := strings.Join(truncatePaths(names), ", ")
	ev := &store.Event{
		Action:      store.ActionExternalChange,
		FromVersion: w.version,
		Detail:      detail,
	}
	if err := w.store.InsertEvent(ev); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: failed to journal change: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stderr, "watcher: active installation modified outside cvswitch (%s); re-run 'cvswitch save' before switching\n", detail)

	if w.onRecord != nil {
		w.onRecord(names)
	}
}

func truncatePaths(names []string) []string {
	if len(names) <= maxDetailPaths {
		return names
	}
	out := make([]string, maxDetailPaths, maxDetailPaths+1)
	copy(out, names[:maxDetailPaths])
	return append(out, fmt.Sprintf("and %d more", len(names)-maxDetailPaths))
}

// Stop halts event collection and flushes any pending batch.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}
