package settings

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/store"
)

// Watcher turns edits of the config file into change commands. The config
// file is the companion UI here: flipping a toggle or editing the keyword
// list in it behaves like the extension popup did. Delivery is
// fire-and-forget; a missed event just means stale config until the next
// edit.
type Watcher struct {
	path    string
	sync    *Synchronizer
	watcher *fsnotify.Watcher
}

// NewWatcher watches the config file at path and feeds diffs to sync.
func NewWatcher(path string, sync *Synchronizer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace the file on save, which drops
	// a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{path: path, sync: sync, watcher: fsw}, nil
}

// Start processes events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	// Editor saves arrive as bursts of writes; collapse each burst.
	debounced := debounce.New(200 * time.Millisecond)

	go func() {
		defer w.watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounced(w.reload)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[settings] Config watch error: %v", err)
			}
		}
	}()

	log.Printf("[settings] Watching %s for changes", w.path)
}

// reload diffs the file against the current snapshot and applies one
// command per changed concern.
func (w *Watcher) reload() {
	cfg, err := config.LoadFrom(w.path)
	if err != nil {
		log.Printf("[settings] Failed to reload config: %v", err)
		return
	}

	for _, cmd := range DiffConfig(w.sync.Snapshot(), cfg) {
		w.sync.Apply(cmd)
	}
}

// DiffConfig compares a snapshot against a freshly-loaded config and
// returns the commands needed to converge: a partial flag delta and/or
// a keyword replacement.
func DiffConfig(current Snapshot, cfg *config.Config) []Command {
	var cmds []Command

	delta := make(map[string]bool)
	if cfg.Features.Scoring != current.Flags.Scoring {
		delta[store.KeyScoring] = cfg.Features.Scoring
	}
	if cfg.Features.NicheFilter != current.Flags.NicheFilter {
		delta[store.KeyNicheFilter] = cfg.Features.NicheFilter
	}
	if cfg.Features.QuickStats != current.Flags.QuickStats {
		delta[store.KeyQuickStats] = cfg.Features.QuickStats
	}
	if len(delta) > 0 {
		cmds = append(cmds, Command{Kind: ApplySettings, Delta: delta})
	}

	if !equalKeywords(current.Keywords, normalize(cfg.Interests.Keywords)) {
		cmds = append(cmds, Command{Kind: ReplaceKeywords, Keywords: cfg.Interests.Keywords})
	}

	return cmds
}

func equalKeywords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
