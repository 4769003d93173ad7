package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound indicates no profile document exists for the uid.
var ErrNotFound = errors.New("user profile not found")

// Repository defines persistence operations on user profiles. Device tokens
// are mutated with set semantics ($addToSet/$pull) so concurrent device
// registrations never clobber each other.
type Repository interface {
	Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.UserProfile, error)
	AddDeviceToken(ctx context.Context, uid, token string) error
	RemoveDeviceTokens(ctx context.Context, uid string, tokens []string) error
}

// MongoUserRepo implements Repository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a user repository over the given database.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create user indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
