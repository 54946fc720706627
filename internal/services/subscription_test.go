package services

import (
	"context"
	"testing"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionToggleRejectsMalformedChannelID(t *testing.T) {
	s := NewSubscriptionService(nil)

	_, err := s.Toggle(context.Background(), uuid.NewString(), "not-a-uuid")

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestSubscriptionToggleRejectsSelf(t *testing.T) {
	s := NewSubscriptionService(nil)
	id := uuid.NewString()

	_, err := s.Toggle(context.Background(), id, id)

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestIsSubscribedRejectsMalformedChannelID(t *testing.T) {
	s := NewSubscriptionService(nil)

	_, err := s.IsSubscribed(context.Background(), uuid.NewString(), "abc")

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestSubscribedChannelsRejectsMalformedUserID(t *testing.T) {
	s := NewSubscriptionService(nil)

	_, _, err := s.SubscribedChannels(context.Background(), "abc", "", "", models.PageParams{Page: 1, Limit: 10})

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}
