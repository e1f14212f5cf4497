package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjectArticleDefaults(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := bson.M{
		"_id":       "a1",
		"title":     "Go generics",
		"createdAt": primitive.NewDateTimeFromTime(created),
	}

	article, ok := projectArticle(doc, "u1")
	require.True(t, ok)

	assert.Equal(t, "a1", article.ID)
	assert.Equal(t, "Go generics", article.Title)
	assert.Equal(t, "", article.Description)
	assert.Equal(t, "", article.Content)
	assert.Equal(t, "technology", article.Category)
	assert.Equal(t, "", article.ImageURL)
	assert.Equal(t, int64(0), article.LikesCount)
	assert.Equal(t, int64(0), article.ViewsCount)
	assert.Empty(t, article.LikedBy)
	assert.False(t, article.IsLiked)
	assert.True(t, article.CreatedAt.Equal(created))
}

func TestProjectArticleMissingTitleIsDropped(t *testing.T) {
	doc := bson.M{
		"_id":         "a2",
		"description": "no title here",
	}

	_, ok := projectArticle(doc, "u1")
	assert.False(t, ok)

	doc["title"] = ""
	_, ok = projectArticle(doc, "u1")
	assert.False(t, ok)
}

func TestProjectArticleIsLikedDerivedFromMembership(t *testing.T) {
	doc := bson.M{
		"_id":        "a3",
		"title":      "Channels",
		"likedBy":    primitive.A{"u1", "u2"},
		"likesCount": int32(2),
	}

	article, ok := projectArticle(doc, "u2")
	require.True(t, ok)
	assert.True(t, article.IsLiked)
	assert.Equal(t, int64(2), article.LikesCount)

	article, ok = projectArticle(doc, "u3")
	require.True(t, ok)
	assert.False(t, article.IsLiked)

	// No viewer means no liked flag even if likedBy has entries.
	article, ok = projectArticle(doc, "")
	require.True(t, ok)
	assert.False(t, article.IsLiked)
}

func TestProjectArticleNumericTypes(t *testing.T) {
	doc := bson.M{
		"_id":        "a4",
		"title":      "Numbers",
		"likesCount": int64(7),
		"viewsCount": float64(3),
	}

	article, ok := projectArticle(doc, "u1")
	require.True(t, ok)
	assert.Equal(t, int64(7), article.LikesCount)
	assert.Equal(t, int64(3), article.ViewsCount)
}

func TestProjectArticleMissingCreatedAtDefaultsToNow(t *testing.T) {
	doc := bson.M{"_id": "a5", "title": "Fresh"}

	article, ok := projectArticle(doc, "u1")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), article.CreatedAt, time.Minute)
}

func TestProjectTodoRequiresAllFields(t *testing.T) {
	created := primitive.NewDateTimeFromTime(time.Now())

	complete := bson.M{
		"_id":         "t1",
		"title":       "write tests",
		"isCompleted": false,
		"userId":      "u1",
		"createdAt":   created,
	}
	todo, ok := projectTodo(complete)
	require.True(t, ok)
	assert.Equal(t, "write tests", todo.Title)
	assert.Equal(t, "u1", todo.UserID)

	for _, missing := range []string{"title", "isCompleted", "userId", "createdAt"} {
		doc := bson.M{}
		for k, v := range complete {
			if k != missing {
				doc[k] = v
			}
		}
		_, ok := projectTodo(doc)
		assert.False(t, ok, "todo without %s should be dropped", missing)
	}
}

func TestProjectQuoteRequiresAllFields(t *testing.T) {
	complete := bson.M{
		"_id":       "q1",
		"content":   "Simplicity is complicated.",
		"author":    "Rob Pike",
		"userId":    "u1",
		"createdAt": primitive.NewDateTimeFromTime(time.Now()),
	}
	quote, ok := projectQuote(complete)
	require.True(t, ok)
	assert.Equal(t, "Rob Pike", quote.Author)

	delete(complete, "author")
	_, ok = projectQuote(complete)
	assert.False(t, ok)
}

func TestDocumentIDHandlesObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), documentID(bson.M{"_id": oid}))
	assert.Equal(t, "plain", documentID(bson.M{"_id": "plain"}))
	assert.Equal(t, "", documentID(bson.M{}))
}
