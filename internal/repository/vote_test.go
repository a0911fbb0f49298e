package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

// The cast filter is what makes concurrent votes safe: a cast only matches
// while the voter is absent from the target set, so two interleaved identical
// casts cannot both land, and the transition signal comes from the match
// itself rather than from a stale read.
func TestCastVoteFilter_RequiresVoterAbsent(t *testing.T) {
	id := bson.NewObjectID()
	voter := bson.NewObjectID()

	f := castVoteFilter(id, voter, models.VoteUp)
	assert.Equal(t, bson.M{"_id": id, "upvotes": bson.M{"$ne": voter}}, f)

	f = castVoteFilter(id, voter, models.VoteDown)
	assert.Equal(t, bson.M{"_id": id, "downvotes": bson.M{"$ne": voter}}, f)
}

// One write adds the voter to the target set and clears the opposite set, so
// a switched vote never leaves the voter in both and never touches other
// voters' entries.
func TestCastVoteUpdate_AddsTargetClearsOpposite(t *testing.T) {
	voter := bson.NewObjectID()

	u := castVoteUpdate(voter, models.VoteUp)
	assert.Equal(t, bson.M{
		"$addToSet": bson.M{"upvotes": voter},
		"$pull":     bson.M{"downvotes": voter},
	}, u)

	u = castVoteUpdate(voter, models.VoteDown)
	assert.Equal(t, bson.M{
		"$addToSet": bson.M{"downvotes": voter},
		"$pull":     bson.M{"upvotes": voter},
	}, u)
}

func TestRetractVoteUpdate_PullsOnlyTargetSet(t *testing.T) {
	voter := bson.NewObjectID()

	assert.Equal(t, bson.M{"$pull": bson.M{"upvotes": voter}}, retractVoteUpdate(voter, models.VoteUp))
	assert.Equal(t, bson.M{"$pull": bson.M{"downvotes": voter}}, retractVoteUpdate(voter, models.VoteDown))
}
