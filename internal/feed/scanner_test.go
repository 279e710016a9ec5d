package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thibautnext/x-growth-extension/internal/settings"
	"github.com/thibautnext/x-growth-extension/internal/stats"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	registry, err := stats.NewRegistry()
	require.NoError(t, err)
	return NewScanner(registry, "xgNotify")
}

func allOn() settings.Snapshot {
	return settings.Snapshot{
		Flags:    settings.Flags{Scoring: true, NicheFilter: true, QuickStats: true},
		Keywords: []string{"crypto"},
	}
}

func TestBuildMetrics(t *testing.T) {
	m := buildMetrics(rawPost{
		ID:           1,
		AuthorHandle: "someone",
		Text:         "check out this crypto tip",
		Likes:        "1.2K",
		Retweets:     "300",
		Replies:      "5",
	})

	assert.Equal(t, 1200, m.Likes)
	assert.Equal(t, 300, m.Retweets)
	assert.Equal(t, 5, m.Replies)
	assert.Equal(t, 75000, m.Followers)
	assert.Equal(t, float64(60), m.AgeMinutes)
	assert.Equal(t, "someone", m.Author)
}

func TestBuildMetricsGarbageCountsReadAsZero(t *testing.T) {
	m := buildMetrics(rawPost{Likes: "like", Retweets: "", Replies: "??"})

	assert.Zero(t, m.Likes)
	assert.Zero(t, m.Retweets)
	assert.Zero(t, m.Replies)
	// Zero engagement still produces the follower floor, never zero.
	assert.Equal(t, 100, m.Followers)
}

func TestPlanAllFeaturesOn(t *testing.T) {
	s := newTestScanner(t)

	post, scripts := s.plan(rawPost{
		ID:           4,
		AuthorHandle: "someone",
		Text:         "check out this crypto tip",
		Likes:        "1.2K",
		Retweets:     "300",
		Replies:      "5",
	}, allOn())

	assert.Equal(t, 100.0, post.Score)
	assert.Equal(t, "high", post.Tier)
	assert.True(t, post.NicheMatch)
	assert.True(t, post.StatsAttached)

	require.Len(t, scripts, 3)
	assert.Contains(t, scripts[0], "xg-score-badge")
	assert.Contains(t, scripts[1], "data-xg-niche")
	assert.Contains(t, scripts[2], "xg-stats-btn")
	for _, js := range scripts {
		assert.Contains(t, js, `article[data-xg-id="4"]`)
	}
}

func TestPlanScoringOffRemovesBadge(t *testing.T) {
	s := newTestScanner(t)
	snap := allOn()
	snap.Flags.Scoring = false

	post, scripts := s.plan(rawPost{ID: 2, Likes: "10"}, snap)

	assert.Zero(t, post.Score)
	assert.Empty(t, post.Tier)
	joined := strings.Join(scripts, "\n")
	assert.Contains(t, joined, "badge.remove()")
	assert.NotContains(t, joined, "appendChild(badge)")
}

func TestPlanNicheFilterOffStripsMarkers(t *testing.T) {
	s := newTestScanner(t)
	snap := allOn()
	snap.Flags.NicheFilter = false

	post, scripts := s.plan(rawPost{ID: 2, Text: "crypto everywhere"}, snap)

	assert.False(t, post.NicheApplied)
	assert.False(t, post.NicheMatch)
	assert.Contains(t, strings.Join(scripts, "\n"), "removeAttribute('data-xg-niche')")
}

func TestPlanQuickStatsNeedsAuthor(t *testing.T) {
	s := newTestScanner(t)

	post, scripts := s.plan(rawPost{ID: 9, AuthorHandle: ""}, allOn())

	assert.False(t, post.StatsAttached)
	assert.NotContains(t, strings.Join(scripts, "\n"), "xg-stats-btn")
}

func TestExtractJSStampsAndSkipsProcessed(t *testing.T) {
	js := extractJS("data-xg-processed", "data-xg-id")

	assert.Contains(t, js, `article[data-testid="tweet"]:not([data-xg-processed])`)
	assert.Contains(t, js, `setAttribute('data-xg-processed', 'true')`)
	assert.Contains(t, js, `setAttribute('data-xg-id'`)
	// Malformed posts stay stamped but report an error.
	assert.Contains(t, js, "catch (e)")
}
