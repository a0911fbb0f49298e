package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeSession struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (f *fakeSession) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeSession) received() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

func TestHub_PushToConnectedUser(t *testing.T) {
	hub := NewHub()
	uid := bson.NewObjectID()
	sess := &fakeSession{}

	hub.Register(uid, sess)
	assert.True(t, hub.Connected(uid))

	hub.Push(uid, "notification", map[string]interface{}{"hello": "world"})

	got := sess.received()
	require.Len(t, got, 1)
	assert.Equal(t, "notification", got[0].Event)
}

func TestHub_PushToDisconnectedUserIsNoop(t *testing.T) {
	hub := NewHub()
	uid := bson.NewObjectID()

	// No session registered; must not panic.
	hub.Push(uid, "notification", nil)
	assert.False(t, hub.Connected(uid))
}

func TestHub_WriteErrorIsSwallowed(t *testing.T) {
	hub := NewHub()
	uid := bson.NewObjectID()
	sess := &fakeSession{err: errors.New("broken pipe")}

	hub.Register(uid, sess)
	hub.Push(uid, "notification", nil)

	// Best-effort contract: the session stays registered, nothing blows up.
	assert.True(t, hub.Connected(uid))
}

func TestHub_LastConnectWins(t *testing.T) {
	hub := NewHub()
	uid := bson.NewObjectID()
	old := &fakeSession{}
	fresh := &fakeSession{}

	hub.Register(uid, old)
	hub.Register(uid, fresh)

	hub.Push(uid, "notification", nil)

	assert.Empty(t, old.received())
	assert.Len(t, fresh.received(), 1)
}

func TestHub_StaleUnregisterKeepsNewSession(t *testing.T) {
	hub := NewHub()
	uid := bson.NewObjectID()
	old := &fakeSession{}
	fresh := &fakeSession{}

	hub.Register(uid, old)
	hub.Register(uid, fresh)

	// The old connection's teardown fires after the reconnect.
	hub.Unregister(uid, old)
	assert.True(t, hub.Connected(uid))

	hub.Unregister(uid, fresh)
	assert.False(t, hub.Connected(uid))
}

func TestHub_ConcurrentConnectDisconnect(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		uid := bson.NewObjectID()
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := &fakeSession{}
			hub.Register(uid, s)
			hub.Push(uid, "notification", nil)
			hub.Unregister(uid, s)
		}()
	}
	wg.Wait()
}
