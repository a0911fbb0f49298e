package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"threadhub/internal/models"
)

// NotificationRepository is the persistence collaborator of the fanout
// engine. It implements services.NotificationStore.
type NotificationRepository struct {
	Col *mongo.Collection
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.Col.InsertOne(ctx, n)
	return err
}

// InsertMany writes one document per recipient as an unordered bulk: each
// insert is independent, so one failed recipient never rolls back siblings.
func (r *NotificationRepository) InsertMany(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(ns))
	for i := range ns {
		writes = append(writes, &mongo.InsertOneModel{Document: ns[i]})
	}
	_, err := r.Col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// ListByUser returns the owner's notifications newest-first, capped.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAllRead flips every unread notification the user owns. Returns how
// many were flipped.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.Col.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MarkOneRead flips a single notification. Ownership is part of the filter,
// not a separate lookup, so one user can never flip another's document; a
// mismatch reads the same as a missing id.
func (r *NotificationRepository) MarkOneRead(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one notification, owner only.
func (r *NotificationRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
