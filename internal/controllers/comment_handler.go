package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/dto"
	"threadhub/internal/middleware"
	"threadhub/internal/models"
	"threadhub/internal/repository"
	"threadhub/internal/services"
	"threadhub/utils"
)

const (
	defaultLimitComments = 50
	maxLimitComments     = 200
)

type CommentHandler struct {
	Comments *repository.CommentRepository
	Posts    *repository.PostRepository
	Users    *repository.UserRepository
	Notifier *services.Notifier
}

// POST /posts/:postId/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	post, err := h.Posts.ByID(c.Context(), postID)
	if err != nil {
		return repoErr(c, err)
	}

	// A reply's parent must exist and belong to the same post.
	var parent *models.Comment
	var parentID *bson.ObjectID
	if body.ParentID != "" {
		pid, perr := bson.ObjectIDFromHex(body.ParentID)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent id"})
		}
		parent, perr = h.Comments.ByID(c.Context(), pid)
		if perr != nil {
			return repoErr(c, perr)
		}
		if parent.PostID != postID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "parent comment belongs to another post"})
		}
		parentID = &pid
	}

	authorName := uid.Hex()
	if author, aerr := h.Users.ByID(c.Context(), uid); aerr == nil {
		authorName = author.Username
	}

	com, err := h.Comments.Create(c.Context(), postID, parentID, uid, authorName, body.Text)
	if err != nil {
		return repoErr(c, err)
	}

	h.Notifier.CommentCreated(c.Context(), post, parent, com, authorName)

	return c.Status(fiber.StatusCreated).JSON(com)
}

// GET /posts/:postId/comments?limit=50&cursor=...
func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	limit := int64(c.QueryInt("limit", defaultLimitComments))
	if limit <= 0 {
		limit = defaultLimitComments
	}
	if limit > maxLimitComments {
		limit = maxLimitComments
	}
	curStr := c.Query("cursor")

	items, next, err := h.Comments.ListByPostOldestFirst(c.Context(), postID, curStr, limit)
	if err != nil {
		return repoErr(c, err)
	}

	resp := dto.ListCommentsResp{
		Comments:   items,
		NextCursor: next,
		HasMore:    next != nil,
	}
	return c.JSON(resp)
}

// Tree godoc
// @Summary      Nested comment tree for a post
// @Description  All comments of the post, oldest-first within each sibling group, nested by parent. Replies whose parent was deleted surface as roots.
// @Tags         comments
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      200  {object} map[string]interface{}
// @Failure      400  {object} map[string]string
// @Router       /posts/{postId}/comments/tree [get]
func (h *CommentHandler) Tree(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	flat, err := h.Comments.AllByPost(c.Context(), postID)
	if err != nil {
		return repoErr(c, err)
	}

	return c.JSON(fiber.Map{"comments": services.BuildCommentTree(flat)})
}

// PUT /comments/:id
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
	}

	var body dto.UpdateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	com, err := h.Comments.Update(c.Context(), id, uid, body.Text)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(com)
}

// DELETE /comments/:id
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
	}

	if err := h.Comments.Delete(c.Context(), id, uid); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /comments/:id/vote
func (h *CommentHandler) Vote(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
	}

	var body dto.VoteReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	com, err := h.Comments.Vote(c.Context(), id, uid, models.VoteDir(body.Type))
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(com)
}
