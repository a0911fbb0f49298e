package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is stored flat; ParentID is nil for top-level comments. The nested
// view is derived on read, never persisted.
type Comment struct {
	ID         bson.ObjectID   `json:"id"        bson:"_id,omitempty"`
	PostID     bson.ObjectID   `json:"postId"    bson:"post_id"`
	ParentID   *bson.ObjectID  `json:"parentId"  bson:"parent_id,omitempty"`
	AuthorID   bson.ObjectID   `json:"authorId"  bson:"author_id"`
	AuthorName string          `json:"authorName,omitempty" bson:"author_name,omitempty"`
	Text       string          `json:"text"      bson:"text"`
	Upvotes    []bson.ObjectID `json:"upvotes"   bson:"upvotes"`
	Downvotes  []bson.ObjectID `json:"downvotes" bson:"downvotes"`
	CreatedAt  time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" bson:"updated_at"`
}
