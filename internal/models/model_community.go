package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Community members are the fanout recipient set for new-post notifications.
type Community struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	CreatorID   bson.ObjectID   `bson:"creator_id" json:"creatorId"`
	Members     []bson.ObjectID `bson:"members" json:"members"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
}
