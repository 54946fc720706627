package services

import (
	"context"
	"strings"
	"testing"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func summaries(ids ...string) []models.VideoSummary {
	out := make([]models.VideoSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.VideoSummary{ID: id})
	}
	return out
}

func mergedIDs(videos []models.VideoSummary) []string {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestMergeRecommendationsDedupsInEncounterOrder(t *testing.T) {
	merged := MergeRecommendations("seed", 10,
		summaries("a", "b"),
		summaries("b", "c"),
		summaries("a", "d"))

	assert.Equal(t, []string{"a", "b", "c", "d"}, mergedIDs(merged))
}

func TestMergeRecommendationsExcludesSeed(t *testing.T) {
	merged := MergeRecommendations("seed", 10,
		summaries("seed", "a"),
		summaries("seed", "b"))

	assert.Equal(t, []string{"a", "b"}, mergedIDs(merged))
}

func TestMergeRecommendationsTruncates(t *testing.T) {
	merged := MergeRecommendations("seed", 3,
		summaries("a", "b", "c", "d", "e"))

	assert.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "b", "c"}, mergedIDs(merged))
}

func TestMergeRecommendationsEmptySources(t *testing.T) {
	merged := MergeRecommendations("seed", 10, summaries(), nil)
	assert.Empty(t, merged)
}

func TestTokenPattern(t *testing.T) {
	assert.Equal(t, "golang|tutorial", tokenPattern("golang tutorial"))
	assert.Equal(t, "", tokenPattern("a an of"), "short tokens dropped")
	assert.Equal(t, "", tokenPattern(""))
}

func TestTokenPatternEscapesMetacharacters(t *testing.T) {
	pattern := tokenPattern("c++ (part 1) video")

	assert.Contains(t, pattern, `c\+\+`)
	assert.Contains(t, pattern, `\(part`)
	assert.NotContains(t, pattern, "1)", "two-char tokens dropped before escaping")
}

func TestTokenPatternCapsTokenCount(t *testing.T) {
	pattern := tokenPattern(strings.Repeat("token ", 30))
	assert.Equal(t, 10, strings.Count(pattern, "|")+1)
}

func TestVideoLookupsRejectMalformedID(t *testing.T) {
	s := NewVideoService(nil, nil)
	ctx := context.Background()

	_, err := s.GetByID(ctx, "abc", "")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = s.Owner(ctx, "abc")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	err = s.RecordView(ctx, "abc", uuid.NewString())
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = s.Recommendations(ctx, "abc", "")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestListRejectsMalformedOwnerFilter(t *testing.T) {
	s := NewVideoService(nil, nil)

	_, _, err := s.List(context.Background(),
		models.VideoListParams{OwnerID: "not-a-uuid"},
		models.PageParams{Page: 1, Limit: 12})

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}
