// ===============================
// internal/models/user.go - User Model and Auth DTOs
// ===============================

package models

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID            string    `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	FullName      string    `json:"fullName" db:"full_name"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	AvatarURL     string    `json:"avatar" db:"avatar_url"`
	CoverImageURL string    `json:"coverImage" db:"cover_image_url"`
	RefreshToken  *string   `json:"-" db:"refresh_token"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the owner shape embedded in video, comment and tweet
// listings. Never carries credentials.
type PublicUser struct {
	ID        string `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	FullName  string `json:"fullName" db:"full_name"`
	AvatarURL string `json:"avatar" db:"avatar_url"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// Request models
type RegisterUserRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	FullName string `form:"fullName"`
	Password string `form:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Response models
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User User `json:"user"`
	AuthTokens
}

// ChannelProfile is the public channel page for a username.
type ChannelProfile struct {
	ID              string    `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	FullName        string    `json:"fullName" db:"full_name"`
	AvatarURL       string    `json:"avatar" db:"avatar_url"`
	CoverImageURL   string    `json:"coverImage" db:"cover_image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	SubscriberCount int       `json:"subscriberCount" db:"subscriber_count"`
	SubscribedCount int       `json:"subscribedToCount" db:"subscribed_count"`
	IsSubscribed    bool      `json:"isSubscribed" db:"is_subscribed"`
}

// WatchHistoryEntry is one row of a user's watch history, newest first.
type WatchHistoryEntry struct {
	Video     VideoSummary `json:"video"`
	WatchedAt time.Time    `json:"watchedAt"`
}

func (r *RegisterUserRequest) ValidateForCreation() []string {
	var errors []string

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errors = append(errors, "Username is required")
	} else {
		if len(username) < MinUsernameLength {
			errors = append(errors, "Username must be at least 3 characters")
		}
		if len(username) > MaxUsernameLength {
			errors = append(errors, "Username cannot exceed 50 characters")
		}
		for _, c := range username {
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '.') {
				errors = append(errors, "Username may only contain lowercase letters, digits, underscore and dot")
				break
			}
		}
	}

	if strings.TrimSpace(r.Email) == "" {
		errors = append(errors, "Email is required")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors = append(errors, "Email is invalid")
	}

	if strings.TrimSpace(r.FullName) == "" {
		errors = append(errors, "Full name is required")
	}

	if len(r.Password) < MinPasswordLength {
		errors = append(errors, "Password must be at least 8 characters")
	}

	return errors
}

func (r *RegisterUserRequest) IsValidForCreation() bool {
	return len(r.ValidateForCreation()) == 0
}

// Constants for user limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxAvatarSize     = 10 * 1024 * 1024
	MaxCoverImageSize = 15 * 1024 * 1024
)
