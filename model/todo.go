package model

import "time"

type Todo struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	IsCompleted bool      `json:"isCompleted" bson:"isCompleted"`
	UserID      string    `json:"userId" bson:"userId"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
