package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRequestValidation(t *testing.T) {
	valid := PublishVideoRequest{Title: "My video"}
	assert.True(t, valid.IsValidForCreation())

	empty := PublishVideoRequest{Title: "   "}
	assert.False(t, empty.IsValidForCreation())

	long := PublishVideoRequest{Title: strings.Repeat("x", 300)}
	assert.False(t, long.IsValidForCreation())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:05", FormatDuration(5))
	assert.Equal(t, "1:30", FormatDuration(90))
	assert.Equal(t, "10:00", FormatDuration(600))
	assert.Equal(t, "1:01:05", FormatDuration(3665))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.0K", FormatCount(1000))
	assert.Equal(t, "1.5K", FormatCount(1500))
	assert.Equal(t, "2.5M", FormatCount(2500000))
	assert.Equal(t, "1.2B", FormatCount(1200000000))
}

func TestAttachOwner(t *testing.T) {
	v := VideoSummary{
		ID:             "vid-1",
		OwnerID:        "user-1",
		OwnerUsername:  "jane_doe",
		OwnerFullName:  "Jane Doe",
		OwnerAvatarURL: "https://cdn/avatar.png",
	}

	v.AttachOwner()

	assert.NotNil(t, v.Owner)
	assert.Equal(t, "user-1", v.Owner.ID)
	assert.Equal(t, "jane_doe", v.Owner.Username)
}
