package userRepo

import (
	"context"
	"fmt"
	"time"

	"roomapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert creates or merges a profile document keyed by uid. createdAt is only
// stamped on first write; registration never resets it.
func (r *MongoUserRepo) Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"name":       profile.Name,
		"role":       profile.Role,
		"bio":        profile.Bio,
		"updated_at": now,
	}
	if profile.Email != "" {
		set["email"] = profile.Email
	}
	if profile.Phone != "" {
		set["phone"] = profile.Phone
	}
	if profile.Location != "" {
		set["location"] = profile.Location
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"uid": profile.UID, "created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.UserProfile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"uid": profile.UID}, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert profile %s: %w", profile.UID, err)
	}
	return &stored, nil
}

// GetByUID retrieves a profile by uid.
func (r *MongoUserRepo) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var profile models.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", uid, err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update and returns the fresh document.
func (r *MongoUserRepo) UpdateProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.UserProfile, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.UserProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"uid": uid}, bson.M{"$set": set}, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile %s: %w", uid, err)
	}
	return &profile, nil
}

// AddDeviceToken registers a device token with $addToSet so duplicates and
// concurrent registrations are safe.
func (r *MongoUserRepo) AddDeviceToken(ctx context.Context, uid, token string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"device_tokens": token},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to add device token for %s: %w", uid, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveDeviceTokens prunes tokens with $pull. Used both for explicit
// unregistration and for cleanup after FCM reports tokens invalid.
func (r *MongoUserRepo) RemoveDeviceTokens(ctx context.Context, uid string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"device_tokens": bson.M{"$in": tokens}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to remove device tokens for %s: %w", uid, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
