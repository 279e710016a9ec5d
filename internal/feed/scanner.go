// Package feed scans the rendered timeline and runs each unprocessed post
// through the annotation pipeline.
package feed

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/thibautnext/x-growth-extension/internal/annotate"
	"github.com/thibautnext/x-growth-extension/internal/counts"
	"github.com/thibautnext/x-growth-extension/internal/niche"
	"github.com/thibautnext/x-growth-extension/internal/score"
	"github.com/thibautnext/x-growth-extension/internal/settings"
	"github.com/thibautnext/x-growth-extension/internal/stats"
	"github.com/thibautnext/x-growth-extension/internal/types"
)

// ageBaselineMinutes stands in for the real post age: exact timestamps
// aren't extracted, so every post is scored as if it were an hour old.
const ageBaselineMinutes = 60

// Scanner runs the per-post pipeline against a chromedp tab. A pass holds
// the scanner mutex, so two scans never interleave their DOM writes.
type Scanner struct {
	registry *stats.Registry
	binding  string

	mu sync.Mutex
}

// NewScanner creates a scanner that reports stats clicks through the named
// CDP binding.
func NewScanner(registry *stats.Registry, binding string) *Scanner {
	return &Scanner{registry: registry, binding: binding}
}

// ScanAndProcess enumerates unprocessed posts, extracts their metrics, and
// annotates each per the settings snapshot. One malformed post never
// aborts the batch: it is logged, stays marked processed, and the scan
// moves on. Returns the scored posts for logging and the debug cache.
func (s *Scanner) ScanAndProcess(ctx context.Context, snap settings.Snapshot) ([]types.ScoredPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raws []rawPost
	err := chromedp.Run(ctx,
		chromedp.Evaluate(extractJS(annotate.AttrProcessed, annotate.AttrID), &raws),
	)
	if err != nil {
		return nil, fmt.Errorf("extract posts: %w", err)
	}

	scanned := make([]types.ScoredPost, 0, len(raws))
	for _, raw := range raws {
		if raw.Error != "" {
			log.Printf("[feed] Skipping malformed post %d: %s", raw.ID, raw.Error)
			continue
		}

		post, scripts := s.plan(raw, snap)

		failed := false
		for _, js := range scripts {
			if err := chromedp.Run(ctx, chromedp.Evaluate(js, nil)); err != nil {
				log.Printf("[feed] Annotation failed for post %d: %v", raw.ID, err)
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		scanned = append(scanned, post)
	}

	return scanned, nil
}

// plan derives the metrics and the annotation scripts for one post under
// the given settings.
func (s *Scanner) plan(raw rawPost, snap settings.Snapshot) (types.ScoredPost, []string) {
	m := buildMetrics(raw)
	s.registry.Observe(m.Author, m.Likes, m.Retweets)

	post := types.ScoredPost{
		AuthorHandle: m.Author,
		Content:      m.Text,
		Likes:        m.Likes,
		Retweets:     m.Retweets,
		Replies:      m.Replies,
		EstFollowers: m.Followers,
		ScannedAt:    time.Now(),
	}

	var scripts []string

	if snap.Flags.Scoring {
		post.Score = score.Opportunity(m)
		tier := score.TierFor(post.Score)
		post.Tier = tier.Name
		scripts = append(scripts, annotate.ScoreBadgeJS(raw.ID, tier))
	} else {
		// A reprocessed post sheds its badge when scoring is off.
		scripts = append(scripts, annotate.RemoveScoreBadgeJS(raw.ID))
	}

	if snap.Flags.NicheFilter {
		result := niche.Match(m.Text, snap.Keywords)
		post.NicheApplied = result != niche.NotConfigured
		post.NicheMatch = result == niche.Hit
		scripts = append(scripts, annotate.NicheJS(raw.ID, result))
	} else {
		// Filtering off behaves like an empty keyword set: stale niche
		// markers are stripped on reprocess.
		scripts = append(scripts, annotate.NicheJS(raw.ID, niche.NotConfigured))
	}

	if snap.Flags.QuickStats && m.Author != "" {
		post.StatsAttached = true
		scripts = append(scripts, annotate.StatsButtonJS(raw.ID, m.Author, s.binding))
	}

	return post, scripts
}

// buildMetrics converts a raw extraction record into scoring inputs. Done
// fresh on every processing attempt; nothing is cached between scans.
func buildMetrics(raw rawPost) score.Metrics {
	likes := counts.Parse(raw.Likes)
	retweets := counts.Parse(raw.Retweets)

	return score.Metrics{
		Followers:  score.EstimateFollowers(likes, retweets),
		Likes:      likes,
		Retweets:   retweets,
		Replies:    counts.Parse(raw.Replies),
		AgeMinutes: ageBaselineMinutes,
		Text:       raw.Text,
		Author:     raw.AuthorHandle,
	}
}

// Invalidate clears the processed stamps page-wide so the next scan
// revisits every rendered post. Always a full clear.
func (s *Scanner) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return chromedp.Run(ctx, chromedp.Evaluate(annotate.ClearProcessedJS(), nil))
}
