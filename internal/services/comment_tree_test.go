package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

func flatComment(id bson.ObjectID, parent *bson.ObjectID, text string) models.Comment {
	return models.Comment{ID: id, ParentID: parent, Text: text}
}

func countNodes(nodes []*CommentNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Replies)
	}
	return n
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.Empty(t, tree)

	tree = BuildCommentTree([]models.Comment{})
	assert.Empty(t, tree)
}

func TestBuildCommentTree_NestsUnderParent(t *testing.T) {
	root := bson.NewObjectID()
	child := bson.NewObjectID()

	tree := BuildCommentTree([]models.Comment{
		flatComment(root, nil, "root"),
		flatComment(child, &root, "child"),
	})

	assert.Len(t, tree, 1)
	assert.Equal(t, root, tree[0].ID)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, child, tree[0].Replies[0].ID)
}

func TestBuildCommentTree_OrphanPromotedToRoot(t *testing.T) {
	missing := bson.NewObjectID()
	orphan := bson.NewObjectID()

	tree := BuildCommentTree([]models.Comment{
		flatComment(orphan, &missing, "reply to a deleted comment"),
	})

	assert.Len(t, tree, 1)
	assert.Equal(t, orphan, tree[0].ID)
	assert.Empty(t, tree[0].Replies)
}

func TestBuildCommentTree_NodeCountMatchesInput(t *testing.T) {
	ids := make([]bson.ObjectID, 6)
	for i := range ids {
		ids[i] = bson.NewObjectID()
	}

	input := []models.Comment{
		flatComment(ids[0], nil, "a"),
		flatComment(ids[1], &ids[0], "b"),
		flatComment(ids[2], &ids[1], "c"),
		flatComment(ids[3], nil, "d"),
		flatComment(ids[4], &ids[3], "e"),
		flatComment(ids[5], &ids[0], "f"),
	}

	tree := BuildCommentTree(input)
	assert.Equal(t, len(input), countNodes(tree))
}

func TestBuildCommentTree_SiblingOrderPreserved(t *testing.T) {
	parent := bson.NewObjectID()
	first := bson.NewObjectID()
	second := bson.NewObjectID()
	third := bson.NewObjectID()

	tree := BuildCommentTree([]models.Comment{
		flatComment(parent, nil, "parent"),
		flatComment(first, &parent, "first"),
		flatComment(second, &parent, "second"),
		flatComment(third, &parent, "third"),
	})

	assert.Len(t, tree, 1)
	replies := tree[0].Replies
	assert.Len(t, replies, 3)
	assert.Equal(t, first, replies[0].ID)
	assert.Equal(t, second, replies[1].ID)
	assert.Equal(t, third, replies[2].ID)
}

// Mirrors the shape {1:nil, 2:1, 3:nil, 4:2, 5:99}: three roots, a chain
// under the first, and the comment with an unresolvable parent at the end.
func TestBuildCommentTree_MixedRootsChainAndOrphan(t *testing.T) {
	c1 := bson.NewObjectID()
	c2 := bson.NewObjectID()
	c3 := bson.NewObjectID()
	c4 := bson.NewObjectID()
	c5 := bson.NewObjectID()
	gone := bson.NewObjectID() // never part of the input

	tree := BuildCommentTree([]models.Comment{
		flatComment(c1, nil, "1"),
		flatComment(c2, &c1, "2"),
		flatComment(c3, nil, "3"),
		flatComment(c4, &c2, "4"),
		flatComment(c5, &gone, "5"),
	})

	assert.Len(t, tree, 3)
	assert.Equal(t, c1, tree[0].ID)
	assert.Equal(t, c3, tree[1].ID)
	assert.Equal(t, c5, tree[2].ID)

	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, c2, tree[0].Replies[0].ID)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, c4, tree[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTree_ChildNeverDuplicatedAtRoot(t *testing.T) {
	parent := bson.NewObjectID()
	child := bson.NewObjectID()

	tree := BuildCommentTree([]models.Comment{
		flatComment(parent, nil, "parent"),
		flatComment(child, &parent, "child"),
	})

	for _, node := range tree {
		if node.ID == child {
			t.Fatalf("nested comment %s also appeared at root", child.Hex())
		}
	}
	assert.Equal(t, 2, countNodes(tree))
}
