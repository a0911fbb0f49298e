package controllers

import (
	"encoding/json"

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
	defaultLimitPosts = 20
	maxLimitPosts     = 100
)

type PostHandler struct {
	Posts       *repository.PostRepository
	Communities *repository.CommunityRepository
	Users       *repository.UserRepository
	Notifier    *services.Notifier
	Cache       *repository.FeedCache
}

// CreatePost godoc
// @Summary      Create a post in a community
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Community ID (hex ObjectID)"
// @Param        body  body  dto.CreatePostReq  true  "Post content"
// @Success      201  {object} models.Post
// @Failure      400  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Router       /communities/{id}/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	communityID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid community id"})
	}

	var body dto.CreatePostReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	community, err := h.Communities.ByID(c.Context(), communityID)
	if err != nil {
		return repoErr(c, err)
	}

	post, err := h.Posts.Create(c.Context(), communityID, uid, body.Title, body.Body)
	if err != nil {
		return repoErr(c, err)
	}

	h.Cache.Invalidate(c.Context(), communityID)

	// Fanout to community members is best-effort; post creation already
	// succeeded and its response does not depend on notifications.
	author, aerr := h.Users.ByID(c.Context(), uid)
	authorName := uid.Hex()
	if aerr == nil {
		authorName = author.Username
	}
	h.Notifier.PostCreated(c.Context(), community, post, authorName)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GET /posts/:postId
func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	post, err := h.Posts.ByID(c.Context(), id)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(post)
}

// GET /communities/:id/posts?limit=20&cursor=...
// The uncursored first page is served from the feed cache when Redis is
// configured.
func (h *PostHandler) ListByCommunity(c *fiber.Ctx) error {
	communityID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid community id"})
	}

	limit := int64(c.QueryInt("limit", defaultLimitPosts))
	if limit <= 0 {
		limit = defaultLimitPosts
	}
	if limit > maxLimitPosts {
		limit = maxLimitPosts
	}
	curStr := c.Query("cursor")

	firstPage := curStr == "" && limit == defaultLimitPosts
	if firstPage {
		if cached := h.Cache.Get(c.Context(), communityID); cached != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}
	}

	items, next, err := h.Posts.ListByCommunity(c.Context(), communityID, curStr, limit)
	if err != nil {
		return repoErr(c, err)
	}

	resp := dto.ListPostsResp{
		Posts:      items,
		NextCursor: next,
		HasMore:    next != nil,
	}

	if firstPage {
		if body, err := json.Marshal(resp); err == nil {
			h.Cache.Set(c.Context(), communityID, body)
		}
	}
	return c.JSON(resp)
}

// PUT /posts/:postId
func (h *PostHandler) Update(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.UpdatePostReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	post, err := h.Posts.Update(c.Context(), id, uid, body.Title, body.Body)
	if err != nil {
		return repoErr(c, err)
	}

	h.Cache.Invalidate(c.Context(), post.CommunityID)
	return c.JSON(post)
}

// DELETE /posts/:postId
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	post, err := h.Posts.ByID(c.Context(), id)
	if err != nil {
		return repoErr(c, err)
	}

	if err := h.Posts.Delete(c.Context(), id, uid); err != nil {
		return repoErr(c, err)
	}

	h.Cache.Invalidate(c.Context(), post.CommunityID)
	return c.SendStatus(fiber.StatusNoContent)
}

// Vote godoc
// @Summary      Toggle a vote on a post
// @Description  Casting the same vote again removes it; the opposite vote switches sets. The author gets a like notification only when a vote newly becomes an upvote.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path  string       true  "Post ID (hex ObjectID)"
// @Param        body    body  dto.VoteReq  true  "Vote direction: up or down"
// @Success      200  {object} models.Post
// @Failure      400  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Router       /posts/{postId}/vote [post]
func (h *PostHandler) Vote(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.VoteReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	post, becameUpvote, err := h.Posts.Vote(c.Context(), id, uid, models.VoteDir(body.Type))
	if err != nil {
		return repoErr(c, err)
	}

	if becameUpvote {
		voterName := uid.Hex()
		if voter, verr := h.Users.ByID(c.Context(), uid); verr == nil {
			voterName = voter.Username
		}
		h.Notifier.PostUpvoted(c.Context(), post, uid, voterName)
	}

	return c.JSON(post)
}
