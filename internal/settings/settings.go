// Package settings owns the in-memory feature flags and niche keywords:
// loaded from the store once at startup, then updated by change commands
// for the rest of the process lifetime. Every applied command invalidates
// the processed markers and triggers an immediate re-scan, so the visible
// feed re-renders under the new configuration.
package settings

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/thibautnext/x-growth-extension/internal/store"
)

// Flags are the three independent feature toggles.
type Flags struct {
	Scoring     bool
	NicheFilter bool
	QuickStats  bool
}

// Snapshot is a point-in-time copy of the configuration. Keywords are
// already lowercased; callers must not mutate the slice.
type Snapshot struct {
	Flags    Flags
	Keywords []string
}

// CommandKind discriminates change commands.
type CommandKind int

const (
	// ApplySettings merges a partial flag map field-by-field.
	ApplySettings CommandKind = iota
	// ReplaceKeywords swaps the keyword list wholesale.
	ReplaceKeywords
)

// Command is one configuration change notification. Delta is keyed by the
// store key names; only present entries are merged.
type Command struct {
	Kind     CommandKind
	Delta    map[string]bool
	Keywords []string
}

// Store is the slice of the key/value store the synchronizer needs.
type Store interface {
	GetBool(key string, fallback bool) (bool, error)
	SetBool(key string, value bool) error
	GetKeywords() ([]string, error)
	SetKeywords(keywords []string) error
}

// Synchronizer moves between exactly two states: uninitialized until Load
// succeeds, then loaded forever (commands self-loop, they never
// re-initialize).
type Synchronizer struct {
	st       Store
	onChange func()

	mu     sync.RWMutex
	loaded bool
	snap   Snapshot
}

// New creates a synchronizer. onChange runs after every applied command
// (and not on the initial load); it is expected to clear the processed
// markers and kick an immediate scan.
func New(st Store, onChange func()) *Synchronizer {
	return &Synchronizer{
		st:       st,
		onChange: onChange,
		snap: Snapshot{
			Flags:    Flags{Scoring: true, NicheFilter: true, QuickStats: true},
			Keywords: []string{},
		},
	}
}

// Load reads flags and keywords from the store once. Missing keys keep
// their defaults (all features on, no keywords).
func (s *Synchronizer) Load() error {
	scoring, err := s.st.GetBool(store.KeyScoring, true)
	if err != nil {
		return fmt.Errorf("load scoring flag: %w", err)
	}
	nicheFilter, err := s.st.GetBool(store.KeyNicheFilter, true)
	if err != nil {
		return fmt.Errorf("load niche filter flag: %w", err)
	}
	quickStats, err := s.st.GetBool(store.KeyQuickStats, true)
	if err != nil {
		return fmt.Errorf("load quick stats flag: %w", err)
	}
	keywords, err := s.st.GetKeywords()
	if err != nil {
		return fmt.Errorf("load keywords: %w", err)
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Flags: Flags{
			Scoring:     scoring,
			NicheFilter: nicheFilter,
			QuickStats:  quickStats,
		},
		Keywords: normalize(keywords),
	}
	s.loaded = true
	s.mu.Unlock()

	return nil
}

// Loaded reports whether the initial load completed.
func (s *Synchronizer) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns the current configuration.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Apply merges or replaces per the command, persists the new values, and
// fires the change hook. Persistence failures are logged and abandoned;
// the in-memory value still changes so the page reflects the user's intent
// until the next successful load.
func (s *Synchronizer) Apply(cmd Command) {
	s.mu.Lock()
	switch cmd.Kind {
	case ApplySettings:
		for key, value := range cmd.Delta {
			switch key {
			case store.KeyScoring:
				s.snap.Flags.Scoring = value
			case store.KeyNicheFilter:
				s.snap.Flags.NicheFilter = value
			case store.KeyQuickStats:
				s.snap.Flags.QuickStats = value
			default:
				log.Printf("[settings] Ignoring unknown flag %q", key)
				continue
			}
			if err := s.st.SetBool(key, value); err != nil {
				log.Printf("[settings] Failed to persist %s: %v", key, err)
			}
		}
	case ReplaceKeywords:
		s.snap.Keywords = normalize(cmd.Keywords)
		if err := s.st.SetKeywords(s.snap.Keywords); err != nil {
			log.Printf("[settings] Failed to persist keywords: %v", err)
		}
	}
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
