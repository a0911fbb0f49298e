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

type CommentRepository struct {
	Client      *mongo.Client
	ColComments *mongo.Collection
	ColPosts    *mongo.Collection
}

// Create inserts a comment and bumps the post's comment_count in one
// transaction. parentID nil means top-level.
func (r *CommentRepository) Create(ctx context.Context, postID bson.ObjectID, parentID *bson.ObjectID, authorID bson.ObjectID, authorName, text string) (*models.Comment, error) {
	now := time.Now().UTC()
	doc := &models.Comment{
		ID:         bson.NewObjectID(),
		PostID:     postID,
		ParentID:   parentID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		Upvotes:    []bson.ObjectID{},
		Downvotes:  []bson.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	sess, err := r.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if _, err := r.ColComments.InsertOne(sc, doc); err != nil {
			return nil, err
		}
		res, err := r.ColPosts.UpdateOne(
			sc,
			bson.M{"_id": postID},
			bson.M{"$inc": bson.M{"comment_count": 1}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *CommentRepository) ByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := r.ColComments.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPostOldestFirst pages a post's comments in creation order with a
// (created_at, _id) cursor. Oldest-first is what the tree builder expects,
// so sibling groups come out chronological.
func (r *CommentRepository) ListByPostOldestFirst(
	ctx context.Context,
	postID bson.ObjectID,
	cursorStr string,
	limit int64,
) (items []models.Comment, next *string, err error) {

	filter := bson.M{"post_id": postID}

	if cursorStr != "" {
		t, oid, derr := cursor.Decode(cursorStr)
		if derr != nil {
			err = fmt.Errorf("%w: %v", ErrBadCursor, derr)
			return
		}
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$gt": t}},
			{"created_at": t, "_id": bson.M{"$gt": oid}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit + 1)

	cur, err := r.ColComments.Find(ctx, filter, opts)
	if err != nil {
		return
	}
	defer cur.Close(ctx)

	var all []models.Comment
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

// AllByPost returns every comment of a post oldest-first, for the tree view.
func (r *CommentRepository) AllByPost(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.ColComments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var all []models.Comment
	if err := cur.All(ctx, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Update edits the text, author only.
func (r *CommentRepository) Update(ctx context.Context, id, authorID bson.ObjectID, text string) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Comment
	err := r.ColComments.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "author_id": authorID},
		bson.M{"$set": bson.M{"text": text, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, r.classify(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the comment (author only) and decrements comment_count,
// floored at zero, in one transaction. Replies are NOT cascaded: they keep
// their dangling parent_id and the tree builder promotes them to roots.
func (r *CommentRepository) Delete(ctx context.Context, id, authorID bson.ObjectID) error {
	sess, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		var c models.Comment
		if err := r.ColComments.FindOneAndDelete(sc, bson.M{"_id": id, "author_id": authorID}).Decode(&c); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, r.classify(sc, id)
			}
			return nil, err
		}

		// comment_count = max(0, (comment_count || 0) - 1)
		update := mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "comment_count", Value: bson.D{
					{Key: "$max", Value: bson.A{
						0,
						bson.D{{Key: "$subtract", Value: bson.A{
							bson.D{{Key: "$ifNull", Value: bson.A{"$comment_count", 0}}},
							1,
						}}},
					}},
				}},
			}}},
		}

		_, err := r.ColPosts.UpdateOne(sc, bson.M{"_id": c.PostID}, update)
		return nil, err
	})
	return err
}

// Vote applies one voter's toggle on a comment, same atomic cast-or-retract
// shape as the post variant.
func (r *CommentRepository) Vote(ctx context.Context, id, voter bson.ObjectID, dir models.VoteDir) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Comment
	err := r.ColComments.FindOneAndUpdate(ctx, castVoteFilter(id, voter, dir), castVoteUpdate(voter, dir), opts).Decode(&c)
	if err == nil {
		return &c, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	err = r.ColComments.FindOneAndUpdate(ctx, bson.M{"_id": id}, retractVoteUpdate(voter, dir), opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) classify(ctx context.Context, id bson.ObjectID) error {
	n, err := r.ColComments.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}
