package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegisterRequest() RegisterUserRequest {
	return RegisterUserRequest{
		Username: "jane_doe",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Password: "supersecret",
	}
}

func TestRegisterRequestValid(t *testing.T) {
	req := validRegisterRequest()
	assert.Empty(t, req.ValidateForCreation())
	assert.True(t, req.IsValidForCreation())
}

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterUserRequest)
		wantErr string
	}{
		{"missing username", func(r *RegisterUserRequest) { r.Username = "" }, "Username is required"},
		{"short username", func(r *RegisterUserRequest) { r.Username = "ab" }, "at least 3 characters"},
		{"long username", func(r *RegisterUserRequest) { r.Username = strings.Repeat("a", 51) }, "cannot exceed 50"},
		{"bad username chars", func(r *RegisterUserRequest) { r.Username = "Jane Doe!" }, "may only contain"},
		{"missing email", func(r *RegisterUserRequest) { r.Email = "" }, "Email is required"},
		{"bad email", func(r *RegisterUserRequest) { r.Email = "not-an-email" }, "Email is invalid"},
		{"missing full name", func(r *RegisterUserRequest) { r.FullName = "  " }, "Full name is required"},
		{"short password", func(r *RegisterUserRequest) { r.Password = "short" }, "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			errs := req.ValidateForCreation()
			assert.NotEmpty(t, errs)

			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, errs)
		})
	}
}

func TestPublicStripsCredentials(t *testing.T) {
	u := User{
		ID:           "id-1",
		Username:     "jane_doe",
		FullName:     "Jane Doe",
		AvatarURL:    "https://cdn/avatar.png",
		PasswordHash: "hash",
	}

	pub := u.Public()

	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, u.Username, pub.Username)
	assert.Equal(t, u.AvatarURL, pub.AvatarURL)
}
