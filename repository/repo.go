package repository

import (
	"context"
	"fmt"
	"time"

	"devquest/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	mongoclientInstance *mongo.Client
	collection          *mongo.Collection
}

func NewRepository(client *mongo.Client, dbName string) *Repository {
	return &Repository{
		mongoclientInstance: client,
		collection:          client.Database(dbName).Collection("user_progress"),
	}
}

// EnsureIndexes creates the user_id and leaderboard indexes.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "aggregated_stats.total_solved", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user_progress indexes: %w", err)
	}
	return nil
}

// FindByUserID returns the user's progress record, or nil when none exists.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&progress)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find progress for user %s: %w", userID, err)
	}
	return &progress, nil
}

// Save upserts the progress record keyed by user_id. Last write wins; the caller
// owns the read-modify-write boundary.
func (r *Repository) Save(ctx context.Context, progress *model.UserProgress) error {
	filter := bson.M{"user_id": progress.UserID}
	update := bson.M{"$set": bson.M{
		"user_id":          progress.UserID,
		"progress_data":    progress.ProgressData,
		"aggregated_stats": progress.AggregatedStats,
		"last_updated":     progress.LastUpdated,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save progress for user %s: %w", progress.UserID, err)
	}
	return nil
}

// FindLeaderboard returns records sorted by total solved, descending.
func (r *Repository) FindLeaderboard(ctx context.Context, limit int64) ([]model.UserProgress, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "aggregated_stats.total_solved", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.UserProgress
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return users, nil
}

// FindStaleSince returns records not updated since the cutoff, for the periodic
// re-sync job.
func (r *Repository) FindStaleSince(ctx context.Context, cutoff time.Time) ([]model.UserProgress, error) {
	filter := bson.M{"last_updated": bson.M{"$lt": cutoff}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.UserProgress
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode stale users: %w", err)
	}
	return users, nil
}
