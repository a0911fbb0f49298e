package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"threadhub/internal/cursor"
	"threadhub/internal/models"
)

type PostRepository struct {
	Col *mongo.Collection
}

func (r *PostRepository) Create(ctx context.Context, communityID, authorID bson.ObjectID, title, body string) (*models.Post, error) {
	now := time.Now().UTC()
	p := &models.Post{
		ID:          bson.NewObjectID(),
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       title,
		Body:        body,
		Upvotes:     []bson.ObjectID{},
		Downvotes:   []bson.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.Col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) ByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCommunity pages newest-first with a (created_at, _id) cursor.
func (r *PostRepository) ListByCommunity(
	ctx context.Context,
	communityID bson.ObjectID,
	cursorStr string,
	limit int64,
) (items []models.Post, next *string, err error) {

	filter := bson.M{"community_id": communityID}

	if cursorStr != "" {
		t, oid, derr := cursor.Decode(cursorStr)
		if derr != nil {
			err = fmt.Errorf("%w: %v", ErrBadCursor, derr)
			return
		}
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": t}},
			{"created_at": t, "_id": bson.M{"$lt": oid}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return
	}
	defer cur.Close(ctx)

	var all []models.Post
	if err = cur.All(ctx, &all); err != nil {
		return
	}

	if int64(len(all)) > limit {
		items = all[:limit]
		last := items[len(items)-1]
		s := cursor.Encode(last.CreatedAt, last.ID)
		next = &s
	} else {
		items = all
	}
	return
}

// Update edits title/body, owner only. Ownership rides in the filter.
func (r *PostRepository) Update(ctx context.Context, id, authorID bson.ObjectID, title, body string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "author_id": authorID},
		bson.M{"$set": bson.M{"title": title, "body": body, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, r.classify(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id, authorID bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id, "author_id": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return r.classify(ctx, id)
	}
	return nil
}

// Vote applies one voter's toggle as single atomic updates, never replacing
// whole voter arrays computed from an earlier read. A cast only matches while
// the voter is outside the target set; when it does not match, the vote is
// already there and gets pulled instead. becameUpvote is true only when an up
// cast actually landed — the one transition that may notify the author.
func (r *PostRepository) Vote(ctx context.Context, id, voter bson.ObjectID, dir models.VoteDir) (post *models.Post, becameUpvote bool, err error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	err = r.Col.FindOneAndUpdate(ctx, castVoteFilter(id, voter, dir), castVoteUpdate(voter, dir), opts).Decode(&p)
	if err == nil {
		return &p, dir == models.VoteUp, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	// Either the vote is already cast or the post is gone.
	err = r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, retractVoteUpdate(voter, dir), opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return &p, false, nil
}

// classify distinguishes "post gone" from "post exists but caller is not the
// author" so handlers can answer 404 vs 403.
func (r *PostRepository) classify(ctx context.Context, id bson.ObjectID) error {
	n, err := r.Col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}
