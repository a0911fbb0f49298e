package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

// In-memory store double for the fanout engine.
type fakeStore struct {
	notifications []models.Notification
	insertErr     error
	bulkErr       error
}

func (f *fakeStore) Insert(_ context.Context, n *models.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) InsertMany(_ context.Context, ns []models.Notification) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.notifications = append(f.notifications, ns...)
	return nil
}

func (f *fakeStore) MarkAllRead(_ context.Context, userID bson.ObjectID) (int64, error) {
	var n int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].Read {
			f.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) MarkOneRead(_ context.Context, userID, id bson.ObjectID) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
			return nil
		}
	}
	return errNotFound
}

var errNotFound = errors.New("not found")

func (f *fakeStore) forUser(uid bson.ObjectID) []models.Notification {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == uid {
			out = append(out, n)
		}
	}
	return out
}

type pushedEvent struct {
	UserID bson.ObjectID
	Event  string
}

type fakePusher struct {
	pushed []pushedEvent
}

func (f *fakePusher) Push(userID bson.ObjectID, event string, _ interface{}) {
	f.pushed = append(f.pushed, pushedEvent{UserID: userID, Event: event})
}

func newTestNotifier() (*Notifier, *fakeStore, *fakePusher) {
	store := &fakeStore{}
	push := &fakePusher{}
	return &Notifier{Store: store, Push: push}, store, push
}

func TestNotify_PersistsThenPushes(t *testing.T) {
	n, store, push := newTestNotifier()
	recipient := bson.NewObjectID()
	actor := bson.NewObjectID()

	n.Notify(context.Background(), recipient, models.NotiLike, "someone upvoted your post", "/posts/x", &actor)

	require.Len(t, store.notifications, 1)
	got := store.notifications[0]
	assert.Equal(t, recipient, got.UserID)
	assert.Equal(t, models.NotiLike, got.Type)
	assert.False(t, got.Read)
	assert.Equal(t, &actor, got.RelatedUser)

	require.Len(t, push.pushed, 1)
	assert.Equal(t, recipient, push.pushed[0].UserID)
	assert.Equal(t, "notification", push.pushed[0].Event)
}

func TestNotify_InvalidTypeRejected(t *testing.T) {
	n, store, push := newTestNotifier()

	n.Notify(context.Background(), bson.NewObjectID(), models.NotiType("bogus"), "msg", "", nil)

	assert.Empty(t, store.notifications)
	assert.Empty(t, push.pushed)
}

func TestNotify_EmptyMessageRejected(t *testing.T) {
	n, store, push := newTestNotifier()

	n.Notify(context.Background(), bson.NewObjectID(), models.NotiComment, "", "", nil)

	assert.Empty(t, store.notifications)
	assert.Empty(t, push.pushed)
}

func TestNotify_StoreFailureSwallowedAndNotPushed(t *testing.T) {
	n, store, push := newTestNotifier()
	store.insertErr = errors.New("mongo down")

	// Must not panic or propagate; the triggering action is unaffected.
	n.Notify(context.Background(), bson.NewObjectID(), models.NotiPost, "msg", "", nil)

	assert.Empty(t, store.notifications)
	assert.Empty(t, push.pushed)
}

func TestNotifyMany_SkipsZeroIDs(t *testing.T) {
	n, store, _ := newTestNotifier()
	a := bson.NewObjectID()

	n.NotifyMany(context.Background(), []bson.ObjectID{a, bson.NilObjectID}, models.NotiPost, "msg", "", nil)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, a, store.notifications[0].UserID)
}

func TestNotifyMany_BulkErrorStillPushesEveryone(t *testing.T) {
	n, store, push := newTestNotifier()
	store.bulkErr = errors.New("one recipient write failed")

	a := bson.NewObjectID()
	b := bson.NewObjectID()

	// Must not panic or propagate; the unordered bulk may have written some
	// recipients before the error, so delivery still runs for the whole batch.
	n.NotifyMany(context.Background(), []bson.ObjectID{a, b}, models.NotiPost, "msg", "", nil)

	require.Len(t, push.pushed, 2)
	assert.Equal(t, a, push.pushed[0].UserID)
	assert.Equal(t, b, push.pushed[1].UserID)
	for _, p := range push.pushed {
		assert.Equal(t, "notification", p.Event)
	}
}

func TestPostCreated_NotifiesMembersExceptAuthor(t *testing.T) {
	n, store, push := newTestNotifier()

	memberA := bson.NewObjectID()
	author := bson.NewObjectID()
	memberC := bson.NewObjectID()

	community := &models.Community{
		ID:      bson.NewObjectID(),
		Name:    "gophers",
		Members: []bson.ObjectID{memberA, author, memberC},
	}
	post := &models.Post{ID: bson.NewObjectID(), AuthorID: author, Title: "hello"}

	n.PostCreated(context.Background(), community, post, "bob")

	require.Len(t, store.notifications, 2)
	assert.Len(t, store.forUser(memberA), 1)
	assert.Len(t, store.forUser(memberC), 1)
	assert.Empty(t, store.forUser(author))

	assert.Len(t, push.pushed, 2)
	for _, n := range store.notifications {
		assert.Equal(t, models.NotiPost, n.Type)
		assert.Equal(t, &post.AuthorID, n.RelatedUser)
	}
}

func TestPostCreated_AuthorOnlyMemberNotifiesNobody(t *testing.T) {
	n, store, push := newTestNotifier()
	author := bson.NewObjectID()

	community := &models.Community{Name: "solo", Members: []bson.ObjectID{author}}
	post := &models.Post{ID: bson.NewObjectID(), AuthorID: author, Title: "talking to myself"}

	n.PostCreated(context.Background(), community, post, "bob")

	assert.Empty(t, store.notifications)
	assert.Empty(t, push.pushed)
}

func TestPostUpvoted_SelfVoteNeverNotifies(t *testing.T) {
	n, store, _ := newTestNotifier()
	author := bson.NewObjectID()
	post := &models.Post{ID: bson.NewObjectID(), AuthorID: author, Title: "mine"}

	n.PostUpvoted(context.Background(), post, author, "bob")

	assert.Empty(t, store.notifications)
}

func TestPostUpvoted_NotifiesAuthor(t *testing.T) {
	n, store, _ := newTestNotifier()
	author := bson.NewObjectID()
	voter := bson.NewObjectID()
	post := &models.Post{ID: bson.NewObjectID(), AuthorID: author, Title: "nice post"}

	n.PostUpvoted(context.Background(), post, voter, "alice")

	require.Len(t, store.notifications, 1)
	assert.Equal(t, author, store.notifications[0].UserID)
	assert.Equal(t, models.NotiLike, store.notifications[0].Type)
}

func TestCommentCreated_TopLevelNotifiesPostAuthor(t *testing.T) {
	n, store, _ := newTestNotifier()
	postAuthor := bson.NewObjectID()
	commenter := bson.NewObjectID()

	post := &models.Post{ID: bson.NewObjectID(), AuthorID: postAuthor, Title: "p"}
	com := &models.Comment{ID: bson.NewObjectID(), AuthorID: commenter}

	n.CommentCreated(context.Background(), post, nil, com, "alice")

	require.Len(t, store.notifications, 1)
	assert.Equal(t, postAuthor, store.notifications[0].UserID)
	assert.Equal(t, models.NotiComment, store.notifications[0].Type)
}

func TestCommentCreated_ReplyNotifiesParentAuthor(t *testing.T) {
	n, store, _ := newTestNotifier()
	postAuthor := bson.NewObjectID()
	parentAuthor := bson.NewObjectID()
	replier := bson.NewObjectID()

	post := &models.Post{ID: bson.NewObjectID(), AuthorID: postAuthor, Title: "p"}
	parent := &models.Comment{ID: bson.NewObjectID(), AuthorID: parentAuthor}
	reply := &models.Comment{ID: bson.NewObjectID(), AuthorID: replier}

	n.CommentCreated(context.Background(), post, parent, reply, "alice")

	require.Len(t, store.notifications, 1)
	assert.Equal(t, parentAuthor, store.notifications[0].UserID)
}

func TestCommentCreated_SelfCommentNeverNotifies(t *testing.T) {
	n, store, _ := newTestNotifier()
	author := bson.NewObjectID()

	post := &models.Post{ID: bson.NewObjectID(), AuthorID: author, Title: "p"}
	com := &models.Comment{ID: bson.NewObjectID(), AuthorID: author}
	n.CommentCreated(context.Background(), post, nil, com, "bob")

	parent := &models.Comment{ID: bson.NewObjectID(), AuthorID: author}
	reply := &models.Comment{ID: bson.NewObjectID(), AuthorID: author}
	n.CommentCreated(context.Background(), post, parent, reply, "bob")

	assert.Empty(t, store.notifications)
}

func TestMarkAllRead_OnlyOwnersUnread(t *testing.T) {
	n, store, push := newTestNotifier()
	owner := bson.NewObjectID()
	other := bson.NewObjectID()

	n.Notify(context.Background(), owner, models.NotiPost, "a", "", nil)
	n.Notify(context.Background(), owner, models.NotiLike, "b", "", nil)
	n.Notify(context.Background(), other, models.NotiPost, "c", "", nil)
	push.pushed = nil

	err := n.MarkAllRead(context.Background(), owner)
	require.NoError(t, err)

	for _, got := range store.forUser(owner) {
		assert.True(t, got.Read)
	}
	for _, got := range store.forUser(other) {
		assert.False(t, got.Read, "another user's notification was touched")
	}

	require.Len(t, push.pushed, 1)
	assert.Equal(t, "notifications_cleared", push.pushed[0].Event)
	assert.Equal(t, owner, push.pushed[0].UserID)
}

func TestMarkOneRead_ForeignOwnerIsNotFound(t *testing.T) {
	n, store, _ := newTestNotifier()
	owner := bson.NewObjectID()
	stranger := bson.NewObjectID()

	n.Notify(context.Background(), owner, models.NotiPost, "a", "", nil)
	require.Len(t, store.notifications, 1)
	id := store.notifications[0].ID

	err := n.MarkOneRead(context.Background(), stranger, id)
	assert.Error(t, err)
	assert.False(t, store.notifications[0].Read, "read flag changed despite owner mismatch")

	require.NoError(t, n.MarkOneRead(context.Background(), owner, id))
	assert.True(t, store.notifications[0].Read)
}
