package model

import "time"

// Engagement event types published to NATS.
const (
	EventArticleLiked   = "article_liked"
	EventArticleUnliked = "article_unliked"
	EventArticleViewed  = "article_viewed"
)

// EngagementEvent is the message published for every like toggle and
// recorded view.
type EngagementEvent struct {
	Type      string    `json:"type"`
	ArticleID string    `json:"article_id"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}
