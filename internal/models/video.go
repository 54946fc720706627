// ===============================
// internal/models/video.go - Video Model and DTOs
// ===============================

package models

import (
	"fmt"
	"strings"
	"time"
)

type Video struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"ownerId" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoURL     string    `json:"videoFile" db:"video_url"`
	ThumbnailURL string    `json:"thumbnail" db:"thumbnail_url"`
	Duration     float64   `json:"duration" db:"duration"`
	Views        int64     `json:"views" db:"views"`
	IsPublished  bool      `json:"isPublished" db:"is_published"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// VideoSummary is the owner-joined listing row used by feeds, search,
// recommendations and watch history.
type VideoSummary struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	VideoURL       string    `json:"videoFile" db:"video_url"`
	ThumbnailURL   string    `json:"thumbnail" db:"thumbnail_url"`
	Duration       float64   `json:"duration" db:"duration"`
	Views          int64     `json:"views" db:"views"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	OwnerID        string    `json:"-" db:"owner_id"`
	OwnerUsername  string    `json:"-" db:"owner_username"`
	OwnerFullName  string    `json:"-" db:"owner_full_name"`
	OwnerAvatarURL string    `json:"-" db:"owner_avatar_url"`
	Owner          *PublicUser `json:"owner,omitempty" db:"-"`
}

// AttachOwner lifts the flat scan columns into the nested owner object.
func (v *VideoSummary) AttachOwner() {
	v.Owner = &PublicUser{
		ID:        v.OwnerID,
		Username:  v.OwnerUsername,
		FullName:  v.OwnerFullName,
		AvatarURL: v.OwnerAvatarURL,
	}
}

// VideoDetail is the single-video page payload.
type VideoDetail struct {
	Video
	Owner           PublicUser `json:"owner"`
	SubscriberCount int        `json:"subscriberCount"`
	IsSubscribed    bool       `json:"isSubscribed"`
	LikeCount       int        `json:"likeCount"`
	DislikeCount    int        `json:"dislikeCount"`
}

// ChannelVideo is a dashboard row with reaction counts.
type ChannelVideo struct {
	Video
	LikeCount    int `json:"likeCount" db:"like_count"`
	DislikeCount int `json:"dislikeCount" db:"dislike_count"`
}

// Request models
type PublishVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type UpdateVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// Listing parameters for the public video feed
type VideoListParams struct {
	Query     string
	SortBy    string
	SortOrder string
	OwnerID   string
	Page      int
	Limit     int
}

func (r *PublishVideoRequest) ValidateForCreation() []string {
	var errors []string

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errors = append(errors, "Title is required")
	}
	if len(title) > MaxVideoTitleLength {
		errors = append(errors, "Title cannot exceed 255 characters")
	}
	if len(r.Description) > MaxVideoDescriptionLength {
		errors = append(errors, "Description cannot exceed 5000 characters")
	}

	return errors
}

func (r *PublishVideoRequest) IsValidForCreation() bool {
	return len(r.ValidateForCreation()) == 0
}

// FormatDuration renders seconds as m:ss or h:mm:ss for clients that
// want a display string.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatCount renders large counts in compact form (1.2K, 3.4M)
func FormatCount(count int64) string {
	if count < 1000 {
		return fmt.Sprintf("%d", count)
	} else if count < 1000000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	} else if count < 1000000000 {
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
	return fmt.Sprintf("%.1fB", float64(count)/1000000000)
}

// Constants for video limits
const (
	MaxVideoTitleLength       = 255
	MaxVideoDescriptionLength = 5000
	MaxVideoFileSize          = 500 * 1024 * 1024
	MaxThumbnailSize          = 10 * 1024 * 1024
)

// Sortable columns for the public feed
var VideoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}
