package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID           bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	CommunityID  bson.ObjectID   `json:"communityId" bson:"community_id"`
	AuthorID     bson.ObjectID   `json:"authorId" bson:"author_id"`
	Title        string          `json:"title" bson:"title"`
	Body         string          `json:"body" bson:"body"`
	Upvotes      []bson.ObjectID `json:"upvotes" bson:"upvotes"`
	Downvotes    []bson.ObjectID `json:"downvotes" bson:"downvotes"`
	CommentCount int             `json:"commentCount" bson:"comment_count"`
	CreatedAt    time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updated_at"`
}
