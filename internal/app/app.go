// Package app wires the annotation session together: the chromedp tab,
// the mutation monitor, the settings synchronizer, the reply tracker, and
// the optional refresh schedule.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	cdruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/thibautnext/x-growth-extension/internal/annotate"
	browseropts "github.com/thibautnext/x-growth-extension/internal/browser"
	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/feed"
	"github.com/thibautnext/x-growth-extension/internal/scheduler"
	"github.com/thibautnext/x-growth-extension/internal/settings"
	"github.com/thibautnext/x-growth-extension/internal/stats"
	"github.com/thibautnext/x-growth-extension/internal/store"
	"github.com/thibautnext/x-growth-extension/internal/tracker"
	"github.com/thibautnext/x-growth-extension/internal/watch"
)

// bindingName is the CDP binding the page runtime calls back through.
const bindingName = "xgNotify"

// feedURL is the page the session attaches to.
const feedURL = "https://x.com/home"

// bindingEvent is the JSON payload every page notification carries.
type bindingEvent struct {
	Kind   string  `json:"kind"`
	Handle string  `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// App holds the application state.
type App struct {
	st       *store.Store
	sync     *settings.Synchronizer
	watcher  *settings.Watcher
	registry *stats.Registry
	scanner  *feed.Scanner
	tracker  *tracker.Tracker
	sched    *scheduler.Scheduler
	monitor  *watch.Monitor

	// Mutable fields guarded by mu; use snapshot() for reads.
	mu        sync.RWMutex
	cfg       *config.Config
	paused    bool
	annotated int

	sessionCtx context.Context
	cancel     context.CancelFunc
}

// New builds the app around an open store. The store is seeded with the
// config defaults on first run, mirroring a fresh install.
func New(cfg *config.Config, st *store.Store) (*App, error) {
	registry, err := stats.NewRegistry()
	if err != nil {
		return nil, err
	}

	a := &App{
		st:       st,
		cfg:      cfg,
		registry: registry,
		scanner:  feed.NewScanner(registry, bindingName),
		tracker:  tracker.New(st),
		sched:    scheduler.New(),
	}

	a.sync = settings.New(st, a.onSettingsChange)

	if err := a.seedStore(cfg); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	return a, nil
}

// seedStore writes the config defaults into the store for keys that have
// never been set, so first startup matches the config file.
func (a *App) seedStore(cfg *config.Config) error {
	existing, err := a.st.Get(store.KeyScoring)
	if err != nil {
		return err
	}
	if _, ok := existing[store.KeyScoring]; ok {
		return nil
	}

	if err := a.st.SetBool(store.KeyScoring, cfg.Features.Scoring); err != nil {
		return err
	}
	if err := a.st.SetBool(store.KeyNicheFilter, cfg.Features.NicheFilter); err != nil {
		return err
	}
	if err := a.st.SetBool(store.KeyQuickStats, cfg.Features.QuickStats); err != nil {
		return err
	}
	if err := a.st.SetKeywords(cfg.Interests.Keywords); err != nil {
		return err
	}

	log.Println("[app] Store seeded with config defaults")
	return nil
}

// Start launches the browser session and begins annotating. It returns
// once the feed is attached; annotation continues in the background until
// Stop.
func (a *App) Start(ctx context.Context) error {
	if err := a.sync.Load(); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cfg := a.configSnapshot()

	debounceWindow := time.Duration(cfg.Scan.DebounceMs) * time.Millisecond
	if debounceWindow <= 0 {
		debounceWindow = 300 * time.Millisecond
	}
	a.monitor = watch.New(debounceWindow, a.scan)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browseropts.Options(cfg.Scan.Headless)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	a.mu.Lock()
	a.sessionCtx = browserCtx
	a.cancel = func() {
		browserCancel()
		allocCancel()
	}
	a.mu.Unlock()

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if bc, ok := ev.(*cdruntime.EventBindingCalled); ok && bc.Name == bindingName {
			a.dispatch(bc.Payload)
		}
	})

	err := chromedp.Run(browserCtx,
		cdruntime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Re-arm the runtime on every navigation.
			_, err := page.AddScriptToEvaluateOnNewDocument(annotate.RuntimeJS(bindingName)).Do(ctx)
			return err
		}),
		chromedp.Navigate(feedURL),
		chromedp.WaitVisible(feed.WaitForFeed, chromedp.ByQuery),
		chromedp.Evaluate(annotate.RuntimeJS(bindingName), nil),
	)
	if err != nil {
		a.Stop()
		return fmt.Errorf("attach to feed: %w", err)
	}

	log.Println("[app] Attached to feed, annotating")

	// The runtime fires an initial mutation once its observer is up, which
	// covers posts already rendered; kick one scan anyway in case the
	// binding event raced session setup.
	go a.scan()

	if path, err := config.ConfigPath(); err == nil {
		watcher, werr := settings.NewWatcher(path, a.sync)
		if werr != nil {
			log.Printf("[app] Config watch unavailable: %v", werr)
		} else {
			a.watcher = watcher
			watcher.Start(browserCtx)
		}
	}

	if hours := cfg.Scan.RefreshIntervalHours; hours > 0 {
		err := a.sched.AddRefreshJob(hours, func(ctx context.Context) error {
			return a.Reprocess()
		})
		if err != nil {
			log.Printf("[app] Refresh job not scheduled: %v", err)
		}
		a.sched.Start()
	}

	return nil
}

// dispatch routes one page notification. Listener callbacks must not
// block, so anything touching the page runs on its own goroutine.
func (a *App) dispatch(payload string) {
	var ev bindingEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Printf("[app] Bad page notification: %v", err)
		return
	}

	switch ev.Kind {
	case "mutation":
		if a.Paused() {
			return
		}
		a.monitor.Notify()
	case "reply":
		a.tracker.NotifySubmission()
	case "stats":
		go a.showStats(ev.Handle, ev.X, ev.Y)
	default:
		log.Printf("[app] Unknown page notification kind %q", ev.Kind)
	}
}

// scan runs one annotation pass over the visible feed.
func (a *App) scan() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[app] Scan panicked: %v", r)
		}
	}()

	if a.Paused() {
		return
	}

	a.mu.RLock()
	ctx := a.sessionCtx
	a.mu.RUnlock()
	if ctx == nil {
		return
	}

	posts, err := a.scanner.ScanAndProcess(ctx, a.sync.Snapshot())
	if err != nil {
		log.Printf("[app] Scan failed: %v", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	a.mu.Lock()
	a.annotated += len(posts)
	total := a.annotated
	a.mu.Unlock()

	log.Printf("[app] Annotated %d posts (%d this session)", len(posts), total)

	if a.configSnapshot().Debug.CachePosts {
		if path, err := store.SaveScoredPosts(posts); err != nil {
			log.Printf("[app] Failed to cache scored posts: %v", err)
		} else {
			log.Printf("[app] Cached scored posts to: %s", path)
		}
	}
}

// onSettingsChange is the synchronizer's hook: clear every processed mark
// and re-run immediately, not through the debounce window.
func (a *App) onSettingsChange() {
	log.Println("[app] Settings changed, reprocessing feed")
	if err := a.Reprocess(); err != nil {
		log.Printf("[app] Reprocess failed: %v", err)
	}
}

// Reprocess clears the processed marks and runs one immediate pass.
func (a *App) Reprocess() error {
	a.mu.RLock()
	ctx := a.sessionCtx
	a.mu.RUnlock()
	if ctx == nil {
		return fmt.Errorf("session not started")
	}

	if err := a.scanner.Invalidate(ctx); err != nil {
		return fmt.Errorf("clear processed marks: %w", err)
	}

	a.scan()
	return nil
}

// showStats answers a stats-button click with the tooltip for the author.
func (a *App) showStats(handle string, x, y float64) {
	a.mu.RLock()
	ctx := a.sessionCtx
	a.mu.RUnlock()
	if ctx == nil || handle == "" {
		return
	}

	snap := a.registry.Lookup(handle)
	js := annotate.TooltipJS(handle, snap, x, y)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, nil)); err != nil {
		log.Printf("[app] Tooltip failed for @%s: %v", handle, err)
	}
}

// Pause suspends annotation: mutations are ignored until Resume.
func (a *App) Pause() {
	a.mu.Lock()
	a.paused = true
	a.mu.Unlock()
	log.Println("[app] Annotation paused")
}

// Resume re-enables annotation and catches up with one pass.
func (a *App) Resume() {
	a.mu.Lock()
	a.paused = false
	a.mu.Unlock()
	log.Println("[app] Annotation resumed")
	go a.scan()
}

// Paused reports whether annotation is suspended.
func (a *App) Paused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.paused
}

// AnnotatedCount returns how many posts this session has annotated.
func (a *App) AnnotatedCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.annotated
}

// TodayReplies reads today's reply counter.
func (a *App) TodayReplies() (int, error) {
	return a.st.ReplyCount(time.Now().Format("2006-01-02"))
}

// ReloadConfig re-reads the config file and applies any changes, same as
// a config-file edit would.
func (a *App) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	for _, cmd := range settings.DiffConfig(a.sync.Snapshot(), cfg) {
		a.sync.Apply(cmd)
	}

	log.Println("Configuration reloaded")
	return nil
}

func (a *App) configSnapshot() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Stop tears the session down: the monitor drops pending scans and the
// browser context is cancelled.
func (a *App) Stop() {
	if a.monitor != nil {
		a.monitor.Stop()
	}
	a.sched.Stop()

	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.sessionCtx = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
