package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/models"
)

// CommentNode is a comment with its direct replies attached. The nested view
// is derived per request from the flat collection; nothing here is persisted.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree turns a flat, parent-referencing comment list into a list
// of root nodes. Input order is preserved within each sibling group, so
// callers control chronology by pre-sorting (the repository supplies
// oldest-first).
//
// A comment whose parent does not resolve in the input set is promoted to a
// root instead of being dropped. That is how replies to a deleted comment
// stay visible.
//
// Total over any input, including empty; never errors. O(n) time and space.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[bson.ObjectID]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))

	for i := range comments {
		n := &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
		nodes[n.ID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, n := range ordered {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
