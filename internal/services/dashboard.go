// ===============================
// internal/services/dashboard.go - Channel Dashboard Read Models
// ===============================

package services

import (
	"context"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/jmoiron/sqlx"
)

type DashboardService struct {
	db *sqlx.DB
}

func NewDashboardService(db *sqlx.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats aggregates the four channel numbers. Each comes from its own
// query, so a write landing mid-request can skew them relative to each
// other; the dashboard tolerates that.
func (s *DashboardService) Stats(ctx context.Context, channelID string) (*models.ChannelStats, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to check channel", err)
	}
	if !exists {
		return nil, apperr.NotFound("channel not found")
	}

	var stats models.ChannelStats

	err = s.db.GetContext(ctx, &stats.TotalVideos,
		`SELECT COUNT(*) FROM videos WHERE owner_id = $1`, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to count videos", err)
	}

	err = s.db.GetContext(ctx, &stats.TotalSubscribers,
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to count subscribers", err)
	}

	err = s.db.GetContext(ctx, &stats.TotalViews,
		`SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1`, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to sum views", err)
	}

	err = s.db.GetContext(ctx, &stats.TotalLikes, `
		SELECT COUNT(*)
		FROM reactions r
		JOIN videos v ON v.id = r.target_id
		WHERE r.target_kind = 'video' AND r.type = 'like' AND v.owner_id = $1`,
		channelID)
	if err != nil {
		return nil, apperr.Internal("failed to count likes", err)
	}

	return &stats, nil
}

// ChannelVideos lists every video of the channel, published or not,
// with per-video reaction counts.
func (s *DashboardService) ChannelVideos(ctx context.Context, channelID string, page models.PageParams) ([]models.ChannelVideo, int, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, channelID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to check channel", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("channel not found")
	}

	var total int
	err = s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM videos WHERE owner_id = $1`, channelID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count videos", err)
	}

	videos := []models.ChannelVideo{}
	err = s.db.SelectContext(ctx, &videos, `
		SELECT
			v.*,
			COUNT(r.id) FILTER (WHERE r.type = 'like') AS like_count,
			COUNT(r.id) FILTER (WHERE r.type = 'dislike') AS dislike_count
		FROM videos v
		LEFT JOIN reactions r ON r.target_kind = 'video' AND r.target_id = v.id
		WHERE v.owner_id = $1
		GROUP BY v.id
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3`, channelID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list channel videos", err)
	}

	return videos, total, nil
}

// ChannelData bundles stats with the first page of videos.
func (s *DashboardService) ChannelData(ctx context.Context, channelID string, page models.PageParams) (*models.ChannelData, error) {
	stats, err := s.Stats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videos, total, err := s.ChannelVideos(ctx, channelID, page)
	if err != nil {
		return nil, err
	}

	return &models.ChannelData{
		Stats:  *stats,
		Videos: models.NewPagedList(videos, total, page),
	}, nil
}
