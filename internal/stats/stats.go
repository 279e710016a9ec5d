// Package stats maintains the per-author quick-stats cache backing the
// hover tooltip. Estimates are aggregated from the engagement this session
// has already seen for the author; nothing is fetched. Snapshots are never
// invalidated by settings changes — staleness is acceptable for a display
// convenience.
package stats

import (
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thibautnext/x-growth-extension/internal/counts"
	"github.com/thibautnext/x-growth-extension/internal/score"
	"github.com/thibautnext/x-growth-extension/internal/types"
)

const cacheSize = 512

// observation accumulates engagement seen for one author.
type observation struct {
	likes    int
	retweets int
	posts    int
}

// Registry caches author snapshots, computed lazily on first lookup.
type Registry struct {
	cache *lru.Cache[string, types.AuthorSnapshot]

	mu       sync.Mutex
	observed *lru.Cache[string, *observation]
}

// NewRegistry creates an empty registry.
func NewRegistry() (*Registry, error) {
	cache, err := lru.New[string, types.AuthorSnapshot](cacheSize)
	if err != nil {
		return nil, err
	}
	observed, err := lru.New[string, *observation](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, observed: observed}, nil
}

// Observe records one post's engagement for an author. Called by the feed
// scanner for every extracted post.
func (r *Registry) Observe(handle string, likes, retweets int) {
	if handle == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	obs, ok := r.observed.Get(handle)
	if !ok {
		obs = &observation{}
		r.observed.Add(handle, obs)
	}
	obs.likes += likes
	obs.retweets += retweets
	obs.posts++
}

// Lookup returns the snapshot for handle, computing and caching it on
// first use. An author with no recorded engagement gets the floor estimate.
func (r *Registry) Lookup(handle string) types.AuthorSnapshot {
	if snap, ok := r.cache.Get(handle); ok {
		return snap
	}

	snap := r.estimate(handle)
	r.cache.Add(handle, snap)
	return snap
}

func (r *Registry) estimate(handle string) types.AuthorSnapshot {
	r.mu.Lock()
	obs, ok := r.observed.Get(handle)
	r.mu.Unlock()

	if !ok || obs.posts == 0 {
		return types.AuthorSnapshot{
			Followers:     100,
			AvgEngagement: 1.0,
			Reach:         counts.Format(1),
		}
	}

	avgLikes := obs.likes / obs.posts
	avgRetweets := obs.retweets / obs.posts
	followers := score.EstimateFollowers(avgLikes, avgRetweets)

	engagement := float64(avgLikes+avgRetweets) / float64(followers) * 100
	engagement = math.Round(engagement*100) / 100

	reach := counts.Format(int(float64(followers) * engagement / 100))

	return types.AuthorSnapshot{
		Followers:     followers,
		AvgEngagement: engagement,
		Reach:         reach,
	}
}
