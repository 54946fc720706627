package models

import (
	"strings"
	"time"
)

type Comment struct {
	ID        string    `json:"id" db:"id"`
	VideoID   string    `json:"videoId" db:"video_id"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CommentWithOwner is a listing row joined to its author.
type CommentWithOwner struct {
	Comment
	OwnerUsername  string      `json:"-" db:"owner_username"`
	OwnerFullName  string      `json:"-" db:"owner_full_name"`
	OwnerAvatarURL string      `json:"-" db:"owner_avatar_url"`
	Owner          *PublicUser `json:"owner,omitempty" db:"-"`
}

func (c *CommentWithOwner) AttachOwner() {
	c.Owner = &PublicUser{
		ID:        c.OwnerID,
		Username:  c.OwnerUsername,
		FullName:  c.OwnerFullName,
		AvatarURL: c.OwnerAvatarURL,
	}
}

type CommentContentRequest struct {
	Content string `json:"content"`
}

func (r *CommentContentRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Content) == "" {
		errors = append(errors, "Content is required")
	}
	if len(r.Content) > MaxCommentLength {
		errors = append(errors, "Content cannot exceed 2000 characters")
	}

	return errors
}

const MaxCommentLength = 2000
