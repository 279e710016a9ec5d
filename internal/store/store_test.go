package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetRemove(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(map[string]string{"a": "1", "b": "2"}))

	values, err := s.Get("a", "b", "missing")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, values)

	// Overwrite
	require.NoError(t, s.Set(map[string]string{"a": "updated"}))
	values, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "updated", values["a"])

	require.NoError(t, s.Remove("a", "never-existed"))
	values, err = s.Get("a")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestBoolFlags(t *testing.T) {
	s := newTestStore(t)

	// Missing flag falls back
	got, err := s.GetBool(KeyScoring, true)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, s.SetBool(KeyScoring, false))
	got, err = s.GetBool(KeyScoring, true)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestKeywords(t *testing.T) {
	s := newTestStore(t)

	kws, err := s.GetKeywords()
	require.NoError(t, err)
	assert.Empty(t, kws)

	require.NoError(t, s.SetKeywords([]string{"crypto", "golang"}))
	kws, err = s.GetKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"crypto", "golang"}, kws)

	// Wholesale replacement
	require.NoError(t, s.SetKeywords([]string{"art"}))
	kws, err = s.GetKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"art"}, kws)
}

func TestReplyCounters(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.IncrementReplyCount("2026-08-30"))
	require.NoError(t, s.IncrementReplyCount("2026-08-30"))
	require.NoError(t, s.IncrementReplyCount("2026-08-29"))

	n, err := s.ReplyCount("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stats, err := s.ReplyStats([]string{"2026-08-28", "2026-08-29", "2026-08-30"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2026-08-28": 0, "2026-08-29": 1, "2026-08-30": 2}, stats)

	total, err := s.TotalReplies([]string{"2026-08-28", "2026-08-29", "2026-08-30"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
