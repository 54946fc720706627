package services

import (
	"context"
	"testing"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPlaylistLookupsRejectMalformedID(t *testing.T) {
	s := NewPlaylistService(nil)
	ctx := context.Background()
	page := models.PageParams{Page: 1, Limit: 12}

	_, err := s.Detail(ctx, "abc", "")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, _, err = s.Videos(ctx, "abc", "", page)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, _, err = s.ListByOwner(ctx, "abc", "", page)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	err = s.AddVideo(ctx, "abc", "also-not-a-uuid", "")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}
