package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"threadhub/internal/models"
)

type CommunityRepository struct {
	Col *mongo.Collection
}

// Create inserts a community whose creator is its first member.
func (r *CommunityRepository) Create(ctx context.Context, name, description string, creator bson.ObjectID) (*models.Community, error) {
	c := &models.Community{
		ID:          bson.NewObjectID(),
		Name:        name,
		Description: description,
		CreatorID:   creator,
		Members:     []bson.ObjectID{creator},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.Col.InsertOne(ctx, c); err != nil {
		if isDup(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}

func (r *CommunityRepository) ByID(ctx context.Context, id bson.ObjectID) (*models.Community, error) {
	var c models.Community
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommunityRepository) List(ctx context.Context) ([]models.Community, error) {
	cur, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Community
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Join is idempotent: $addToSet keeps members unique.
func (r *CommunityRepository) Join(ctx context.Context, id, userID bson.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommunityRepository) Leave(ctx context.Context, id, userID bson.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
