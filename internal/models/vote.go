package models

// VoteDir is a vote direction as it arrives from the API.
type VoteDir string

const (
	VoteUp   VoteDir = "up"
	VoteDown VoteDir = "down"
)
