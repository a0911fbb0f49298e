package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotiType string

const (
	NotiComment NotiType = "comment"
	NotiLike    NotiType = "like"
	NotiFollow  NotiType = "follow"
	NotiPost    NotiType = "post"
	NotiSystem  NotiType = "system"
)

// ValidNotiType reports whether t belongs to the closed notification type set.
func ValidNotiType(t NotiType) bool {
	switch t {
	case NotiComment, NotiLike, NotiFollow, NotiPost, NotiSystem:
		return true
	}
	return false
}

// Notification documents are created only by the fanout engine. The only
// mutation after creation is the read flag flipping forward.
type Notification struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID  `bson:"user_id"       json:"userId"`
	Type        NotiType       `bson:"type"          json:"type"`
	Message     string         `bson:"message"       json:"message"`
	Link        string         `bson:"link,omitempty" json:"link,omitempty"`
	RelatedUser *bson.ObjectID `bson:"related_user,omitempty" json:"relatedUser,omitempty"`
	Read        bool           `bson:"read"          json:"read"`
	CreatedAt   time.Time      `bson:"created_at"    json:"createdAt"`
}
