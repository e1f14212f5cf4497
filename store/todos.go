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

// TodoStore owns the todos collection. Every operation is scoped to the
// owning user; there is no sharing.
type TodoStore struct {
	col *mongo.Collection
}

func NewTodoStore(db *mongo.Database) *TodoStore {
	return &TodoStore{col: db.Collection("todos")}
}

func (s *TodoStore) List(ctx context.Context, userID string) ([]model.Todo, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "todos", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "todos", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	todos := make([]model.Todo, 0, len(docs))
	for _, doc := range docs {
		if todo, ok := projectTodo(doc); ok {
			todos = append(todos, todo)
		}
	}

	metrics.MongoOperationsTotal.WithLabelValues("find", "todos", "success").Inc()
	return todos, nil
}

func (s *TodoStore) Create(ctx context.Context, userID, title string) (model.Todo, error) {
	if userID == "" {
		return model.Todo{}, ErrNotAuthenticated
	}

	todo := model.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		IsCompleted: false,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, todo); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("insert", "todos", "error").Inc()
		return model.Todo{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("insert", "todos", "success").Inc()
	return todo, nil
}

// SetCompleted flips the completion flag. Title stays immutable after
// creation, so this is the only mutable field.
func (s *TodoStore) SetCompleted(ctx context.Context, userID, todoID string, isCompleted bool) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": todoID, "userId": userID},
		bson.M{"$set": bson.M{"isCompleted": isCompleted}},
	)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("update", "todos", "error").Inc()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	metrics.MongoOperationsTotal.WithLabelValues("update", "todos", "success").Inc()
	return nil
}

func (s *TodoStore) Delete(ctx context.Context, userID, todoID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": todoID, "userId": userID})
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("delete", "todos", "error").Inc()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	metrics.MongoOperationsTotal.WithLabelValues("delete", "todos", "success").Inc()
	return nil
}
