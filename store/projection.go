package store

import (
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"engagement-service/model"
)

// projectArticle maps a raw article document to its view entity. A document
// without a title is unusable and gets dropped; every other field falls back
// to its default. IsLiked is derived from likedBy membership of the viewer.
func projectArticle(doc bson.M, viewerID string) (model.Article, bool) {
	id := documentID(doc)

	title, ok := doc["title"].(string)
	if !ok || title == "" {
		log.Printf("[WARN] skipping article %s: missing title", id)
		return model.Article{}, false
	}

	likedBy := stringSliceField(doc, "likedBy")

	return model.Article{
		ID:          id,
		Title:       title,
		Description: stringField(doc, "description", ""),
		Content:     stringField(doc, "content", ""),
		Category:    stringField(doc, "category", "technology"),
		ImageURL:    stringField(doc, "imageUrl", ""),
		LikesCount:  intField(doc, "likesCount", 0),
		ViewsCount:  intField(doc, "viewsCount", 0),
		LikedBy:     likedBy,
		IsLiked:     viewerID != "" && contains(likedBy, viewerID),
		CreatedAt:   timeField(doc, "createdAt", time.Now()),
	}, true
}

// projectTodo requires every field; a partial document is skipped.
func projectTodo(doc bson.M) (model.Todo, bool) {
	id := documentID(doc)

	title, okTitle := doc["title"].(string)
	isCompleted, okDone := doc["isCompleted"].(bool)
	userID, okUser := doc["userId"].(string)
	createdAt, okTime := rawTime(doc["createdAt"])
	if !okTitle || !okDone || !okUser || !okTime {
		log.Printf("[WARN] skipping todo %s: missing required fields", id)
		return model.Todo{}, false
	}

	return model.Todo{
		ID:          id,
		Title:       title,
		IsCompleted: isCompleted,
		UserID:      userID,
		CreatedAt:   createdAt,
	}, true
}

// projectQuote requires every field; a partial document is skipped.
func projectQuote(doc bson.M) (model.Quote, bool) {
	id := documentID(doc)

	content, okContent := doc["content"].(string)
	author, okAuthor := doc["author"].(string)
	userID, okUser := doc["userId"].(string)
	createdAt, okTime := rawTime(doc["createdAt"])
	if !okContent || !okAuthor || !okUser || !okTime {
		log.Printf("[WARN] skipping quote %s: missing required fields", id)
		return model.Quote{}, false
	}

	return model.Quote{
		ID:        id,
		Content:   content,
		Author:    author,
		UserID:    userID,
		CreatedAt: createdAt,
	}, true
}

func documentID(doc bson.M) string {
	switch v := doc["_id"].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}

func stringField(doc bson.M, key, fallback string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return fallback
}

func intField(doc bson.M, key string, fallback int64) int64 {
	switch v := doc[key].(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return fallback
	}
}

func timeField(doc bson.M, key string, fallback time.Time) time.Time {
	if t, ok := rawTime(doc[key]); ok {
		return t
	}
	return fallback
}

func rawTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	default:
		return time.Time{}, false
	}
}

func stringSliceField(doc bson.M, key string) []string {
	switch v := doc[key].(type) {
	case primitive.A:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	default:
		return []string{}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
