package models

import (
	"strings"
	"time"
)

type Playlist struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"ownerId" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsPublic    bool      `json:"isPublic" db:"is_public"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// PlaylistSummary is a row in a user's playlist listing.
type PlaylistSummary struct {
	Playlist
	TotalVideos    int    `json:"totalVideos" db:"total_videos"`
	FirstThumbnail string `json:"thumbnail" db:"first_thumbnail"`
}

// PlaylistDetail is the playlist page payload.
type PlaylistDetail struct {
	Playlist
	Owner                PublicUser `json:"owner"`
	OwnerSubscriberCount int        `json:"ownerSubscriberCount"`
	TotalVideos          int        `json:"totalVideos"`
	FirstThumbnail       string     `json:"thumbnail"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"isPublic"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"isPublic"`
}

func (r *CreatePlaylistRequest) ValidateForCreation() []string {
	var errors []string

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errors = append(errors, "Name is required")
	}
	if len(name) > MaxPlaylistNameLength {
		errors = append(errors, "Name cannot exceed 100 characters")
	}
	if len(r.Description) > MaxPlaylistDescriptionLength {
		errors = append(errors, "Description cannot exceed 2000 characters")
	}

	return errors
}

func (r *CreatePlaylistRequest) IsValidForCreation() bool {
	return len(r.ValidateForCreation()) == 0
}

const (
	MaxPlaylistNameLength        = 100
	MaxPlaylistDescriptionLength = 2000
)
