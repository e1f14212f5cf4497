package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"engagement-service/metrics"
	"engagement-service/model"
)

// ErrEmailTaken is returned when sign-up hits the unique email index.
var ErrEmailTaken = errors.New("email already registered")

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

func (s *UserStore) Create(ctx context.Context, user model.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("insert", "users", "error").Inc()
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("insert", "users", "success").Inc()
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return user, nil
}
