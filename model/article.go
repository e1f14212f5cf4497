package model

import "time"

// Article is the view-ready projection of an article document. LikedBy is
// kept server-side only; clients get the derived IsLiked flag instead.
type Article struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Content     string    `json:"content" bson:"content"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl"`
	LikesCount  int64     `json:"likesCount" bson:"likesCount"`
	ViewsCount  int64     `json:"viewsCount" bson:"viewsCount"`
	LikedBy     []string  `json:"-" bson:"likedBy"`
	IsLiked     bool      `json:"isLiked" bson:"-"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
