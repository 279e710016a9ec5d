// Package score computes the reply-opportunity score for a post from its
// visible engagement numbers. The formula is a heuristic: it favors posts
// with strong engagement relative to the author's (estimated) audience,
// recent posts, and posts that few people have replied to yet.
package score

import "math"

// Metrics holds the signals extracted from a single rendered post.
// It is rebuilt from the DOM on every processing attempt and never cached.
type Metrics struct {
	Followers  int
	Likes      int
	Retweets   int
	Replies    int
	AgeMinutes float64
	Text       string
	Author     string
}

const (
	// assumedEngagementRate is the engagement-to-follower ratio used to
	// back out a follower estimate when the real count isn't visible.
	assumedEngagementRate = 0.02

	minEstimatedFollowers = 100
	maxEstimatedFollowers = 10_000_000
)

// EstimateFollowers guesses an author's follower count from a post's
// engagement, assuming a ~2% engagement rate. The result is clamped to
// [100, 10M].
func EstimateFollowers(likes, retweets int) int {
	estimated := float64(likes+retweets) / assumedEngagementRate
	return int(math.Max(minEstimatedFollowers, math.Min(maxEstimatedFollowers, estimated)))
}

// Opportunity returns the 0-100 opportunity score for m. A post with zero
// followers scores exactly 0.
func Opportunity(m Metrics) float64 {
	if m.Followers == 0 {
		return 0
	}

	engagementRate := float64(m.Likes+m.Retweets) / float64(m.Followers) * 1000

	// Linear decay over 24 hours, floored so old posts aren't zeroed out.
	recencyFactor := math.Max(0.1, 1-m.AgeMinutes/(24*60))

	// Scarce replies mean more room to be seen.
	replyFactor := 1 / float64(m.Replies+1)

	raw := float64(m.Followers) * engagementRate * replyFactor * recencyFactor / 1000

	return math.Max(0, math.Min(100, raw))
}

// Tier is the coarse bucket a score falls into. Label and Glyph are
// display-only; nothing downstream branches on them.
type Tier struct {
	Name  string
	Label string
	Glyph string
}

var (
	TierHigh   = Tier{Name: "high", Label: "High", Glyph: "🟢"}
	TierMedium = Tier{Name: "medium", Label: "Med", Glyph: "🟡"}
	TierLow    = Tier{Name: "low", Label: "Low", Glyph: "🔴"}
)

// TierFor buckets a score: >=10 high, >=3 medium, otherwise low.
func TierFor(score float64) Tier {
	switch {
	case score >= 10:
		return TierHigh
	case score >= 3:
		return TierMedium
	default:
		return TierLow
	}
}
