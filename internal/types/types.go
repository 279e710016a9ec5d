package types

import "time"

// ScoredPost is the record of one annotated post: the engagement extracted
// from the DOM plus everything the pipeline derived from it. Used for the
// debug cache and log output.
type ScoredPost struct {
	AuthorHandle  string    `json:"author_handle"`
	Content       string    `json:"content"`
	Likes         int       `json:"likes"`
	Retweets      int       `json:"retweets"`
	Replies       int       `json:"replies"`
	EstFollowers  int       `json:"est_followers"`
	Score         float64   `json:"score"`
	Tier          string    `json:"tier"`
	NicheMatch    bool      `json:"niche_match"`
	NicheApplied  bool      `json:"niche_applied"`
	StatsAttached bool      `json:"stats_attached"`
	ScannedAt     time.Time `json:"scanned_at"`
}

// AuthorSnapshot is a cached stats estimate for one author, shown in the
// quick-stats tooltip. Stale values are acceptable; it's a display
// convenience.
type AuthorSnapshot struct {
	Followers     int     `json:"followers"`
	AvgEngagement float64 `json:"avg_engagement"`
	Reach         string  `json:"reach"`
}
