package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/store"
)

// fakeStore is an in-memory Store for synchronizer tests.
type fakeStore struct {
	bools    map[string]bool
	keywords []string
	failSet  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{bools: make(map[string]bool)}
}

func (f *fakeStore) GetBool(key string, fallback bool) (bool, error) {
	if v, ok := f.bools[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (f *fakeStore) SetBool(key string, value bool) error {
	if f.failSet {
		return assert.AnError
	}
	f.bools[key] = value
	return nil
}

func (f *fakeStore) GetKeywords() ([]string, error) {
	return f.keywords, nil
}

func (f *fakeStore) SetKeywords(keywords []string) error {
	if f.failSet {
		return assert.AnError
	}
	f.keywords = keywords
	return nil
}

func TestLoadDefaults(t *testing.T) {
	s := New(newFakeStore(), nil)
	assert.False(t, s.Loaded())

	require.NoError(t, s.Load())
	assert.True(t, s.Loaded())

	snap := s.Snapshot()
	assert.True(t, snap.Flags.Scoring)
	assert.True(t, snap.Flags.NicheFilter)
	assert.True(t, snap.Flags.QuickStats)
	assert.Empty(t, snap.Keywords)
}

func TestLoadStoredValues(t *testing.T) {
	fs := newFakeStore()
	fs.bools[store.KeyScoring] = false
	fs.keywords = []string{"Crypto", " Golang "}

	s := New(fs, nil)
	require.NoError(t, s.Load())

	snap := s.Snapshot()
	assert.False(t, snap.Flags.Scoring)
	assert.True(t, snap.Flags.NicheFilter)
	assert.Equal(t, []string{"crypto", "golang"}, snap.Keywords)
}

func TestApplySettingsMergesFieldByField(t *testing.T) {
	fs := newFakeStore()
	changes := 0
	s := New(fs, func() { changes++ })
	require.NoError(t, s.Load())

	s.Apply(Command{Kind: ApplySettings, Delta: map[string]bool{store.KeyScoring: false}})

	snap := s.Snapshot()
	assert.False(t, snap.Flags.Scoring)
	// Untouched flags keep their values
	assert.True(t, snap.Flags.NicheFilter)
	assert.True(t, snap.Flags.QuickStats)
	// Persisted through
	assert.False(t, fs.bools[store.KeyScoring])
	assert.Equal(t, 1, changes)

	// Still loaded: commands self-loop
	assert.True(t, s.Loaded())
}

func TestReplaceKeywordsIsWholesale(t *testing.T) {
	fs := newFakeStore()
	changes := 0
	s := New(fs, func() { changes++ })
	require.NoError(t, s.Load())

	s.Apply(Command{Kind: ReplaceKeywords, Keywords: []string{"crypto", "AI"}})
	assert.Equal(t, []string{"crypto", "ai"}, s.Snapshot().Keywords)

	s.Apply(Command{Kind: ReplaceKeywords, Keywords: []string{"art"}})
	assert.Equal(t, []string{"art"}, s.Snapshot().Keywords)
	assert.Equal(t, []string{"art"}, fs.keywords)
	assert.Equal(t, 2, changes)
}

func TestApplySurvivesStoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.failSet = true
	changes := 0
	s := New(fs, func() { changes++ })
	require.NoError(t, s.Load())

	// Persistence fails, in-memory state still changes and the hook fires.
	s.Apply(Command{Kind: ApplySettings, Delta: map[string]bool{store.KeyQuickStats: false}})
	assert.False(t, s.Snapshot().Flags.QuickStats)
	assert.Equal(t, 1, changes)
}

func TestDiffConfig(t *testing.T) {
	current := Snapshot{
		Flags:    Flags{Scoring: true, NicheFilter: true, QuickStats: true},
		Keywords: []string{"crypto"},
	}

	cfg := config.Default()
	cfg.Features.Scoring = false
	cfg.Interests.Keywords = []string{"crypto", "golang"}

	cmds := DiffConfig(current, cfg)
	require.Len(t, cmds, 2)

	assert.Equal(t, ApplySettings, cmds[0].Kind)
	assert.Equal(t, map[string]bool{store.KeyScoring: false}, cmds[0].Delta)

	assert.Equal(t, ReplaceKeywords, cmds[1].Kind)
	assert.Equal(t, []string{"crypto", "golang"}, cmds[1].Keywords)
}

func TestDiffConfigNoChanges(t *testing.T) {
	current := Snapshot{
		Flags:    Flags{Scoring: true, NicheFilter: true, QuickStats: true},
		Keywords: []string{},
	}
	assert.Empty(t, DiffConfig(current, config.Default()))
}
