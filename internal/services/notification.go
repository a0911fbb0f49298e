package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

// NotificationStore is the persistence side of the fanout engine.
// Implemented by repository.NotificationRepository; tests use a fake.
type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	InsertMany(ctx context.Context, ns []models.Notification) error
	MarkAllRead(ctx context.Context, userID bson.ObjectID) (int64, error)
	MarkOneRead(ctx context.Context, userID, id bson.ObjectID) error
}

// Pusher is the live delivery side. Implemented by realtime.Hub.
// Best-effort by contract: implementations never block on a slow client and
// never report delivery failure upward.
type Pusher interface {
	Push(userID bson.ObjectID, event string, payload interface{})
}

// Notifier turns domain events into persisted notification records and
// attempts immediate delivery to connected recipients. Persistence always
// comes first; a failed or impossible push never affects the stored record.
type Notifier struct {
	Store NotificationStore
	Push  Pusher
}

// Notify persists one notification and pushes it if the recipient is
// connected. It never returns an error: fanout rides on another action's
// request path (creating a post, voting), and that action must succeed
// whether or not its notifications do. Failures are logged and dropped.
func (n *Notifier) Notify(ctx context.Context, recipient bson.ObjectID, typ models.NotiType, message, link string, actor *bson.ObjectID) {
	if !models.ValidNotiType(typ) {
		slog.Warn("notify: invalid type", "type", string(typ))
		return
	}
	if message == "" {
		slog.Warn("notify: empty message", "type", string(typ))
		return
	}
	if recipient.IsZero() {
		slog.Warn("notify: zero recipient", "type", string(typ))
		return
	}

	doc := &models.Notification{
		ID:          bson.NewObjectID(),
		UserID:      recipient,
		Type:        typ,
		Message:     message,
		Link:        link,
		RelatedUser: actor,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := n.Store.Insert(ctx, doc); err != nil {
		slog.Error("notify: insert failed", "user_id", recipient.Hex(), "type", string(typ), "error", err)
		return
	}

	n.Push.Push(recipient, "notification", doc)
}

// NotifyMany fans one event out to several recipients. Inserts go as one
// unordered bulk, so recipients fail independently; whoever was written gets
// pushed. Zero ids are skipped.
func (n *Notifier) NotifyMany(ctx context.Context, recipients []bson.ObjectID, typ models.NotiType, message, link string, actor *bson.ObjectID) {
	if !models.ValidNotiType(typ) || message == "" {
		slog.Warn("notifyMany: invalid input", "type", string(typ))
		return
	}

	now := time.Now().UTC()
	docs := make([]models.Notification, 0, len(recipients))
	for _, uid := range recipients {
		if uid.IsZero() {
			continue
		}
		docs = append(docs, models.Notification{
			ID:          bson.NewObjectID(),
			UserID:      uid,
			Type:        typ,
			Message:     message,
			Link:        link,
			RelatedUser: actor,
			Read:        false,
			CreatedAt:   now,
		})
	}
	if len(docs) == 0 {
		return
	}

	// Unordered bulk keeps going past individual write errors, so a partial
	// batch is possible and accepted. Pushing everyone regardless is fine:
	// a push with no stored record costs the recipient nothing.
	if err := n.Store.InsertMany(ctx, docs); err != nil {
		slog.Error("notifyMany: bulk insert incomplete", "type", string(typ), "recipients", len(docs), "error", err)
	}

	for i := range docs {
		n.Push.Push(docs[i].UserID, "notification", &docs[i])
	}
}

// MarkAllRead flips every unread notification the user owns, then signals the
// user's live session that the badge can clear.
func (n *Notifier) MarkAllRead(ctx context.Context, userID bson.ObjectID) error {
	if _, err := n.Store.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	n.Push.Push(userID, "notifications_cleared", nil)
	return nil
}

// MarkOneRead flips one owned notification; the ownership check lives in the
// store's filter. Propagates ErrNotFound for a missing or foreign id.
func (n *Notifier) MarkOneRead(ctx context.Context, userID, id bson.ObjectID) error {
	return n.Store.MarkOneRead(ctx, userID, id)
}

// ---- Fanout policies ----

// PostCreated notifies every community member except the author.
func (n *Notifier) PostCreated(ctx context.Context, community *models.Community, post *models.Post, authorName string) {
	recipients := make([]bson.ObjectID, 0, len(community.Members))
	for _, m := range community.Members {
		if m != post.AuthorID {
			recipients = append(recipients, m)
		}
	}
	if len(recipients) == 0 {
		return
	}

	msg := fmt.Sprintf("%s posted in %s: %s", authorName, community.Name, post.Title)
	n.NotifyMany(ctx, recipients, models.NotiPost, msg, "/posts/"+post.ID.Hex(), &post.AuthorID)
}

// PostUpvoted notifies the post's author about a fresh upvote. The caller
// reports whether this vote actually transitioned into "upvoted" — repeat
// confirmations and un-votes never reach this method. Self-votes are dropped
// here.
func (n *Notifier) PostUpvoted(ctx context.Context, post *models.Post, voter bson.ObjectID, voterName string) {
	if voter == post.AuthorID {
		return
	}
	msg := fmt.Sprintf("%s upvoted your post: %s", voterName, post.Title)
	n.Notify(ctx, post.AuthorID, models.NotiLike, msg, "/posts/"+post.ID.Hex(), &voter)
}

// CommentCreated notifies the parent content's author: the parent comment's
// author for a reply, the post's author for a top-level comment. Commenting
// on your own content notifies nobody.
func (n *Notifier) CommentCreated(ctx context.Context, post *models.Post, parent *models.Comment, comment *models.Comment, authorName string) {
	recipient := post.AuthorID
	msg := fmt.Sprintf("%s commented on your post: %s", authorName, post.Title)
	if parent != nil {
		recipient = parent.AuthorID
		msg = fmt.Sprintf("%s replied to your comment", authorName)
	}

	if recipient == comment.AuthorID {
		return
	}
	n.Notify(ctx, recipient, models.NotiComment, msg, "/posts/"+post.ID.Hex(), &comment.AuthorID)
}
