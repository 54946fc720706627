package models

import (
	"strings"
	"time"
)

type Tweet struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TweetWithCounts is a listing row with its author and reaction counts.
type TweetWithCounts struct {
	Tweet
	LikeCount      int         `json:"likeCount" db:"like_count"`
	DislikeCount   int         `json:"dislikeCount" db:"dislike_count"`
	OwnerUsername  string      `json:"-" db:"owner_username"`
	OwnerFullName  string      `json:"-" db:"owner_full_name"`
	OwnerAvatarURL string      `json:"-" db:"owner_avatar_url"`
	Owner          *PublicUser `json:"owner,omitempty" db:"-"`
}

func (t *TweetWithCounts) AttachOwner() {
	t.Owner = &PublicUser{
		ID:        t.OwnerID,
		Username:  t.OwnerUsername,
		FullName:  t.OwnerFullName,
		AvatarURL: t.OwnerAvatarURL,
	}
}

type TweetContentRequest struct {
	Content string `json:"content"`
}

func (r *TweetContentRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Content) == "" {
		errors = append(errors, "Content is required")
	}
	if len(r.Content) > MaxTweetLength {
		errors = append(errors, "Content cannot exceed 500 characters")
	}

	return errors
}

const MaxTweetLength = 500
