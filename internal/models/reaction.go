package models

import "time"

// TargetKind identifies what a reaction points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// ReactionType is the polarity of a reaction.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is one user's state toward one target. At most one row per
// (user, target) pair exists, enforced by a unique index.
type Reaction struct {
	ID         string       `json:"id" db:"id"`
	UserID     string       `json:"userId" db:"user_id"`
	TargetKind TargetKind   `json:"targetKind" db:"target_kind"`
	TargetID   string       `json:"targetId" db:"target_id"`
	Type       ReactionType `json:"type" db:"type"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}

// ToggleOutcome describes what a toggle did.
type ToggleOutcome string

const (
	OutcomeCreated ToggleOutcome = "created"
	OutcomeUpdated ToggleOutcome = "updated"
	OutcomeRemoved ToggleOutcome = "removed"
)

// ToggleResult is the toggle response payload. Status is nil after a
// removal, otherwise the reaction type now in effect.
type ToggleResult struct {
	Outcome ToggleOutcome `json:"outcome"`
	Status  *ReactionType `json:"status"`
}

// ReactionStatus reports the caller's current reaction on a target.
type ReactionStatus struct {
	Status *ReactionType `json:"status"`
}

// ReactionCounts carries per-target aggregate counts.
type ReactionCounts struct {
	LikeCount    int `json:"likeCount" db:"like_count"`
	DislikeCount int `json:"dislikeCount" db:"dislike_count"`
}
