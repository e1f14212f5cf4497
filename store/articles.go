package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"engagement-service/metrics"
	"engagement-service/model"
)

// ArticleStore owns the articles collection: the ordered feed query, the
// transactional like toggle and the view counter.
type ArticleStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewArticleStore(db *mongo.Database) *ArticleStore {
	return &ArticleStore{
		client: db.Client(),
		col:    db.Collection("articles"),
	}
}

// List returns the full article feed ordered by createdAt descending,
// projected for the given viewer. Documents without a title are dropped.
func (s *ArticleStore) List(ctx context.Context, viewerID string) ([]model.Article, error) {
	return s.list(ctx, bson.M{}, viewerID)
}

// ListLiked returns only the articles the viewer has liked, newest first.
// Backed by a likedBy membership filter, so every result projects with
// IsLiked set.
func (s *ArticleStore) ListLiked(ctx context.Context, viewerID string) ([]model.Article, error) {
	return s.list(ctx, bson.M{"likedBy": viewerID}, viewerID)
}

func (s *ArticleStore) list(ctx context.Context, filter bson.M, viewerID string) ([]model.Article, error) {
	if viewerID == "" {
		return nil, ErrNotAuthenticated
	}

	start := time.Now()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "articles", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "articles", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	articles := make([]model.Article, 0, len(docs))
	for _, doc := range docs {
		if article, ok := projectArticle(doc, viewerID); ok {
			articles = append(articles, article)
		}
	}

	metrics.MongoOperationsTotal.WithLabelValues("find", "articles", "success").Inc()
	metrics.MongoOperationDuration.WithLabelValues("find", "articles").Observe(time.Since(start).Seconds())
	return articles, nil
}

// ToggleLike flips the viewer's membership in likedBy and adjusts likesCount
// accordingly, inside one transaction. Returns whether the article ends up
// liked by the user.
//
// The advisory init step backfills legacy documents that predate the like
// fields; it has no ordering guarantee relative to the transaction and may
// lose a race with a concurrent toggle, which is fine since the transaction
// re-reads current state.
func (s *ArticleStore) ToggleLike(ctx context.Context, userID, articleID string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}

	s.ensureLikeFields(ctx, articleID)

	session, err := s.client.StartSession()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var doc struct {
			LikedBy    []string `bson:"likedBy"`
			LikesCount int64    `bson:"likesCount"`
		}
		if err := s.col.FindOne(sc, bson.M{"_id": articleID}).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return false, ErrNotFound
			}
			return false, err
		}

		likedBy, likesCount, liked := applyToggle(doc.LikedBy, doc.LikesCount, userID)

		_, err := s.col.UpdateOne(sc, bson.M{"_id": articleID}, bson.M{
			"$set": bson.M{"likedBy": likedBy, "likesCount": likesCount},
		})
		return liked, err
	})
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("transaction", "articles", "error").Inc()
		return false, classifyTxnError(err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("transaction", "articles", "success").Inc()
	liked, _ := result.(bool)
	return liked, nil
}

// RecordView ensures viewsCount exists and applies a server-side atomic
// increment. Deliberately not transactional with the like path.
func (s *ArticleStore) RecordView(ctx context.Context, articleID string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": articleID, "viewsCount": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"viewsCount": int64(0)}},
	)
	if err != nil {
		log.Printf("[WARN] viewsCount init failed for article %s: %v", articleID, err)
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": articleID},
		bson.M{"$inc": bson.M{"viewsCount": 1}},
	)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("update", "articles", "error").Inc()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	metrics.MongoOperationsTotal.WithLabelValues("update", "articles", "success").Inc()
	return nil
}

// ReconcileLikeCounts recomputes likesCount from likedBy for every document
// where the two have drifted apart. Returns the number of repaired articles.
func (s *ArticleStore) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	recount := bson.M{"$size": bson.M{"$ifNull": bson.A{"$likedBy", bson.A{}}}}

	filter := bson.M{"$expr": bson.M{"$ne": bson.A{bson.M{"$ifNull": bson.A{"$likesCount", 0}}, recount}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"likesCount": recount}}},
	}

	res, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("updateMany", "articles", "error").Inc()
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("updateMany", "articles", "success").Inc()
	return res.ModifiedCount, nil
}

// ensureLikeFields backfills likedBy/likesCount on documents that predate
// them. Best effort only; failures are logged and the toggle proceeds.
func (s *ArticleStore) ensureLikeFields(ctx context.Context, articleID string) {
	inits := []struct {
		field string
		value interface{}
	}{
		{"likedBy", []string{}},
		{"likesCount", int64(0)},
	}
	for _, init := range inits {
		_, err := s.col.UpdateOne(ctx,
			bson.M{"_id": articleID, init.field: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{init.field: init.value}},
		)
		if err != nil {
			log.Printf("[WARN] %s init failed for article %s: %v", init.field, articleID, err)
		}
	}
}

// applyToggle computes the new likedBy membership and counter for one toggle.
// Removal drops every occurrence of the user id but decrements the counter
// once, floored at zero.
func applyToggle(likedBy []string, likesCount int64, userID string) ([]string, int64, bool) {
	next := make([]string, 0, len(likedBy)+1)
	member := false
	for _, id := range likedBy {
		if id == userID {
			member = true
			continue
		}
		next = append(next, id)
	}

	if member {
		if likesCount > 0 {
			likesCount--
		}
		return next, likesCount, false
	}

	return append(next, userID), likesCount + 1, true
}

// classifyTxnError maps driver failures onto the store taxonomy. The driver
// retries transient conflicts internally; labels survive only once the retry
// budget is exhausted.
func classifyTxnError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) &&
		(cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.HasErrorLabel("UnknownTransactionCommitResult")) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return fmt.Errorf("%w: %v", ErrTransport, err)
}
