package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

// voteFields maps a direction to its target voter set and the opposite set.
func voteFields(dir models.VoteDir) (target, opposite string) {
	if dir == models.VoteDown {
		return "downvotes", "upvotes"
	}
	return "upvotes", "downvotes"
}

// castVoteFilter matches the document only while the voter is absent from the
// target set. The membership check rides inside the same atomic update that
// adds the voter, so two interleaved identical casts can never both count as
// a fresh vote.
func castVoteFilter(id, voter bson.ObjectID, dir models.VoteDir) bson.M {
	target, _ := voteFields(dir)
	return bson.M{"_id": id, target: bson.M{"$ne": voter}}
}

// castVoteUpdate adds the voter to the target set and clears any opposite
// vote in one write, preserving the at-most-one-set invariant.
func castVoteUpdate(voter bson.ObjectID, dir models.VoteDir) bson.M {
	target, opposite := voteFields(dir)
	return bson.M{
		"$addToSet": bson.M{target: voter},
		"$pull":     bson.M{opposite: voter},
	}
}

// retractVoteUpdate removes the voter from the target set, the toggle-off
// branch taken when the cast filter did not match.
func retractVoteUpdate(voter bson.ObjectID, dir models.VoteDir) bson.M {
	target, _ := voteFields(dir)
	return bson.M{"$pull": bson.M{target: voter}}
}
