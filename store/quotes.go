package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"engagement-service/metrics"
	"engagement-service/model"
)

// QuoteStore owns the quotes collection. Quotes are append-only: list and
// create, no edit or delete.
type QuoteStore struct {
	col *mongo.Collection
}

func NewQuoteStore(db *mongo.Database) *QuoteStore {
	return &QuoteStore{col: db.Collection("quotes")}
}

func (s *QuoteStore) List(ctx context.Context, userID string) ([]model.Quote, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "quotes", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "quotes", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	quotes := make([]model.Quote, 0, len(docs))
	for _, doc := range docs {
		if quote, ok := projectQuote(doc); ok {
			quotes = append(quotes, quote)
		}
	}

	metrics.MongoOperationsTotal.WithLabelValues("find", "quotes", "success").Inc()
	return quotes, nil
}

func (s *QuoteStore) Create(ctx context.Context, userID, content, author string) (model.Quote, error) {
	if userID == "" {
		return model.Quote{}, ErrNotAuthenticated
	}

	quote := model.Quote{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, quote); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("insert", "quotes", "error").Inc()
		return model.Quote{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("insert", "quotes", "success").Inc()
	return quote, nil
}
