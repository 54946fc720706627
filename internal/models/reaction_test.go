package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetKindValid(t *testing.T) {
	assert.True(t, TargetVideo.Valid())
	assert.True(t, TargetComment.Valid())
	assert.True(t, TargetTweet.Valid())
	assert.False(t, TargetKind("playlist").Valid())
	assert.False(t, TargetKind("").Valid())
}

func TestReactionTypeValid(t *testing.T) {
	assert.True(t, ReactionLike.Valid())
	assert.True(t, ReactionDislike.Valid())
	assert.False(t, ReactionType("love").Valid())
	assert.False(t, ReactionType("").Valid())
}
