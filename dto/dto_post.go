package dto

import "threadhub/internal/models"

type CreatePostReq struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Body  string `json:"body" validate:"max=10000"`
}

type UpdatePostReq struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Body  string `json:"body" validate:"max=10000"`
}

type VoteReq struct {
	Type string `json:"type" validate:"required,oneof=up down"`
}

type ListPostsResp struct {
	Posts      []models.Post `json:"posts"`
	NextCursor *string       `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}
