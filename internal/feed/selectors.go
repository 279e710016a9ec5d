package feed

// X.com DOM selectors
// These are isolated here because X changes their DOM frequently
// Update these when annotation breaks

const (
	// Feed selectors
	FeedContainer = `[data-testid="primaryColumn"]`
	TweetArticle  = `article[data-testid="tweet"]`

	// Tweet content selectors
	TweetText   = `[data-testid="tweetText"]`
	TweetAuthor = `[data-testid="User-Name"]`

	// Engagement selectors
	ReplyButton   = `[data-testid="reply"]`
	RetweetButton = `[data-testid="retweet"]`
	LikeButton    = `[data-testid="like"]`

	// Reply composition
	ReplyComposer     = `[data-testid="tweetTextarea_0"]`
	TweetButton       = `[data-testid="tweetButton"]`
	TweetButtonInline = `[data-testid="tweetButtonInline"]`
)

// Common wait conditions
const (
	WaitForFeed = FeedContainer
)
