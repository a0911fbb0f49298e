package dto

type CreateCommunityReq struct {
	Name        string `json:"name" validate:"required,min=3,max=64"`
	Description string `json:"description" validate:"max=500"`
}
