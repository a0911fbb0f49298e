package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCursor_RoundTrip(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	id := bson.NewObjectID()

	s := Encode(created, id)
	gotTime, gotID, err := Decode(s)

	require.NoError(t, err)
	assert.Equal(t, created, gotTime)
	assert.Equal(t, id, gotID)
}

func TestCursor_DecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode("not base64!!!")
	assert.Error(t, err)

	// Valid base64, but not our JSON payload.
	_, _, err = Decode("aGVsbG8gd29ybGQ=")
	assert.Error(t, err)
}

func TestCursor_SubMillisecondTruncated(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 45, 123_456_789, time.UTC)
	id := bson.NewObjectID()

	gotTime, _, err := Decode(Encode(created, id))

	require.NoError(t, err)
	assert.Equal(t, created.Truncate(time.Millisecond), gotTime)
}
