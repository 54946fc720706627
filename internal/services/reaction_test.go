package services

import (
	"context"
	"testing"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.NoError(t, validID(uuid.NewString()))
	assert.Error(t, validID("abc"))
	assert.Error(t, validID(""))
	assert.Error(t, validID("123e4567-e89b-12d3-a456-42661417400")) // one char short
}

func TestToggleRejectsMalformedTargetID(t *testing.T) {
	s := NewReactionService(nil)

	_, err := s.Toggle(context.Background(), uuid.NewString(), models.TargetVideo, "abc", models.ReactionLike)

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestStatusRejectsMalformedTargetID(t *testing.T) {
	s := NewReactionService(nil)

	_, err := s.Status(context.Background(), uuid.NewString(), models.TargetComment, "not-a-uuid")

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestCountsRejectsMalformedTargetID(t *testing.T) {
	s := NewReactionService(nil)

	_, err := s.Counts(context.Background(), models.TargetTweet, "42")

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestToggleRejectsInvalidKindBeforeID(t *testing.T) {
	s := NewReactionService(nil)

	_, err := s.Toggle(context.Background(), uuid.NewString(), models.TargetKind("playlist"), uuid.NewString(), models.ReactionLike)

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}
