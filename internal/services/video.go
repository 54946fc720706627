// ===============================
// internal/services/video.go - Video Catalog and Recommendations
// ===============================

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/storage"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type VideoService struct {
	db    *sqlx.DB
	media *storage.Client
}

func NewVideoService(db *sqlx.DB, media *storage.Client) *VideoService {
	return &VideoService{db: db, media: media}
}

// MediaFolder is the storage prefix holding a video's files.
func (s *VideoService) MediaFolder(ownerID, videoID string) string {
	return fmt.Sprintf("videos/%s/%s", ownerID, videoID)
}

// NewVideoID mints the id before upload so media keys can embed it.
func (s *VideoService) NewVideoID() string {
	return uuid.New().String()
}

// Publish records an uploaded video. Media files are already in the
// store when this runs.
func (s *VideoService) Publish(ctx context.Context, video *models.Video) (*models.Video, error) {
	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration, is_published)
		VALUES (:id, :owner_id, :title, :description, :video_url, :thumbnail_url, :duration, true)
		RETURNING created_at, updated_at`

	rows, err := s.db.NamedQueryContext(ctx, query, video)
	if err != nil {
		return nil, apperr.Internal("failed to create video", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&video.CreatedAt, &video.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to read created video", err)
		}
	}
	video.IsPublished = true

	return video, nil
}

// GetByID loads the single-video page. Unpublished videos are visible
// only to their owner.
func (s *VideoService) GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoDetail, error) {
	if err := validID(videoID); err != nil {
		return nil, err
	}

	var detail models.VideoDetail
	row := struct {
		models.Video
		OwnerUsername   string `db:"owner_username"`
		OwnerFullName   string `db:"owner_full_name"`
		OwnerAvatarURL  string `db:"owner_avatar_url"`
		SubscriberCount int    `db:"subscriber_count"`
		IsSubscribed    bool   `db:"is_subscribed"`
		LikeCount       int    `db:"like_count"`
		DislikeCount    int    `db:"dislike_count"`
	}{}

	err := s.db.GetContext(ctx, &row, `
		SELECT
			v.*,
			u.username AS owner_username,
			u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar_url,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = v.owner_id) AS subscriber_count,
			EXISTS(
				SELECT 1 FROM subscriptions
				WHERE channel_id = v.owner_id AND subscriber_id = $2
			) AS is_subscribed,
			(SELECT COUNT(*) FROM reactions WHERE target_kind = 'video' AND target_id = v.id AND type = 'like') AS like_count,
			(SELECT COUNT(*) FROM reactions WHERE target_kind = 'video' AND target_id = v.id AND type = 'dislike') AS dislike_count
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1`, videoID, nullableID(viewerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("video not found")
		}
		return nil, apperr.Internal("failed to load video", err)
	}

	if !row.IsPublished && row.OwnerID != viewerID {
		return nil, apperr.NotFound("video not found")
	}

	detail.Video = row.Video
	detail.Owner = models.PublicUser{
		ID:        row.OwnerID,
		Username:  row.OwnerUsername,
		FullName:  row.OwnerFullName,
		AvatarURL: row.OwnerAvatarURL,
	}
	detail.SubscriberCount = row.SubscriberCount
	detail.IsSubscribed = row.IsSubscribed
	detail.LikeCount = row.LikeCount
	detail.DislikeCount = row.DislikeCount

	return &detail, nil
}

// Owner returns the owning user id, or NotFound.
func (s *VideoService) Owner(ctx context.Context, videoID string) (string, error) {
	if err := validID(videoID); err != nil {
		return "", err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM videos WHERE id = $1`, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("video not found")
		}
		return "", apperr.Internal("failed to load video", err)
	}
	return ownerID, nil
}

// UpdateInfo changes title, description and optionally the thumbnail.
// Returns the previous thumbnail URL when it was replaced.
func (s *VideoService) UpdateInfo(ctx context.Context, videoID, actorID string, req *models.UpdateVideoRequest, newThumbnailURL string) (*models.Video, string, error) {
	ownerID, err := s.Owner(ctx, videoID)
	if err != nil {
		return nil, "", err
	}
	if ownerID != actorID {
		return nil, "", apperr.Forbidden("only the owner can update this video")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" && req.Description == "" && newThumbnailURL == "" {
		return nil, "", apperr.InvalidArgument("nothing to update")
	}
	if len(title) > models.MaxVideoTitleLength {
		return nil, "", apperr.InvalidArgument("title cannot exceed 255 characters")
	}

	var oldThumbnail string
	if newThumbnailURL != "" {
		if err := s.db.GetContext(ctx, &oldThumbnail,
			`SELECT thumbnail_url FROM videos WHERE id = $1`, videoID); err != nil {
			return nil, "", apperr.Internal("failed to load video", err)
		}
	}

	var video models.Video
	err = s.db.GetContext(ctx, &video, `
		UPDATE videos SET
			title = COALESCE(NULLIF($1, ''), title),
			description = COALESCE(NULLIF($2, ''), description),
			thumbnail_url = COALESCE(NULLIF($3, ''), thumbnail_url),
			updated_at = NOW()
		WHERE id = $4
		RETURNING *`, title, req.Description, newThumbnailURL, videoID)
	if err != nil {
		return nil, "", apperr.Internal("failed to update video", err)
	}

	return &video, oldThumbnail, nil
}

// Delete removes the row and all dependent rows, then the media files.
// The row goes first inside a transaction; media cleanup failures are
// reported but cannot resurrect the video.
func (s *VideoService) Delete(ctx context.Context, videoID, actorID string) error {
	ownerID, err := s.Owner(ctx, videoID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the owner can delete this video")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	// reactions and history have no FK cascade path from comments
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE (target_kind = 'video' AND target_id = $1)
		   OR (target_kind = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = $1))`,
		videoID); err != nil {
		return apperr.Internal("failed to delete video reactions", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, videoID); err != nil {
		return apperr.Internal("failed to delete video", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal("failed to commit video deletion", err)
	}

	if err := s.media.DeletePrefix(ctx, s.MediaFolder(ownerID, videoID)); err != nil {
		return apperr.Internal("video removed but media cleanup failed", err)
	}

	return nil
}

// TogglePublish flips visibility and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, actorID string) (bool, error) {
	ownerID, err := s.Owner(ctx, videoID)
	if err != nil {
		return false, err
	}
	if ownerID != actorID {
		return false, apperr.Forbidden("only the owner can change publish status")
	}

	var isPublished bool
	err = s.db.GetContext(ctx, &isPublished, `
		UPDATE videos SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1
		RETURNING is_published`, videoID)
	if err != nil {
		return false, apperr.Internal("failed to toggle publish status", err)
	}

	return isPublished, nil
}

// List returns published videos with search, sort and pagination.
func (s *VideoService) List(ctx context.Context, params models.VideoListParams, page models.PageParams) ([]models.VideoSummary, int, error) {
	where := "v.is_published = true"
	args := []interface{}{}
	argN := 1

	if params.OwnerID != "" {
		if err := validID(params.OwnerID); err != nil {
			return nil, 0, err
		}
		where += fmt.Sprintf(" AND v.owner_id = $%d", argN)
		args = append(args, params.OwnerID)
		argN++
	}
	if params.Query != "" {
		where += fmt.Sprintf(" AND (v.title ILIKE $%d OR v.description ILIKE $%d)", argN, argN)
		args = append(args, "%"+params.Query+"%")
		argN++
	}

	sortColumn, ok := models.VideoSortColumns[params.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM videos v WHERE " + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, apperr.Internal("failed to count videos", err)
	}

	query := fmt.Sprintf(`
		SELECT
			v.id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration, v.views, v.created_at,
			u.id AS owner_id, u.username AS owner_username,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar_url
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY v.%s %s
		LIMIT $%d OFFSET $%d`, where, sortColumn, sortOrder, argN, argN+1)
	args = append(args, page.Limit, page.Offset())

	videos := []models.VideoSummary{}
	if err := s.db.SelectContext(ctx, &videos, query, args...); err != nil {
		return nil, 0, apperr.Internal("failed to list videos", err)
	}

	for i := range videos {
		videos[i].AttachOwner()
	}

	return videos, total, nil
}

// RecordView bumps the view counter and appends to the viewer's watch
// history in one transaction. Re-watching moves nothing; the history
// keeps its original append position.
func (s *VideoService) RecordView(ctx context.Context, videoID, viewerID string) error {
	if err := validID(videoID); err != nil {
		return err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
	if err != nil {
		return apperr.Internal("failed to check video", err)
	}
	if !exists {
		return apperr.NotFound("video not found")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = $1`, videoID); err != nil {
		return apperr.Internal("failed to record view", err)
	}

	if viewerID != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO watch_history (user_id, video_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()`,
			viewerID, videoID); err != nil {
			return apperr.Internal("failed to record watch history", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal("failed to commit view", err)
	}

	return nil
}

// Recommendations gathers candidates from four sources, dedups by id
// in encounter order, drops the seed video and truncates to 10.
func (s *VideoService) Recommendations(ctx context.Context, videoID, viewerID string) ([]models.VideoSummary, error) {
	if err := validID(videoID); err != nil {
		return nil, err
	}

	var seed models.Video
	err := s.db.GetContext(ctx, &seed, `SELECT * FROM videos WHERE id = $1`, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("video not found")
		}
		return nil, apperr.Internal("failed to load video", err)
	}

	const summaryColumns = `
		v.id, v.title, v.description, v.video_url, v.thumbnail_url,
		v.duration, v.views, v.created_at,
		u.id AS owner_id, u.username AS owner_username,
		u.full_name AS owner_full_name, u.avatar_url AS owner_avatar_url`

	sameOwner := []models.VideoSummary{}
	err = s.db.SelectContext(ctx, &sameOwner, `
		SELECT `+summaryColumns+`
		FROM videos v JOIN users u ON u.id = v.owner_id
		WHERE v.owner_id = $1 AND v.id != $2 AND v.is_published = true
		ORDER BY v.created_at DESC
		LIMIT 5`, seed.OwnerID, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load owner videos", err)
	}

	similar := []models.VideoSummary{}
	if pattern := tokenPattern(seed.Title + " " + seed.Description); pattern != "" {
		err = s.db.SelectContext(ctx, &similar, `
			SELECT `+summaryColumns+`
			FROM videos v JOIN users u ON u.id = v.owner_id
			WHERE v.id != $1 AND v.is_published = true
			  AND (v.title ~* $2 OR v.description ~* $2)
			ORDER BY v.views DESC
			LIMIT 5`, videoID, pattern)
		if err != nil {
			return nil, apperr.Internal("failed to load similar videos", err)
		}
	}

	mostViewed := []models.VideoSummary{}
	err = s.db.SelectContext(ctx, &mostViewed, `
		SELECT `+summaryColumns+`
		FROM videos v JOIN users u ON u.id = v.owner_id
		WHERE v.id != $1 AND v.is_published = true
		ORDER BY v.views DESC
		LIMIT 5`, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load popular videos", err)
	}

	fromHistory := []models.VideoSummary{}
	if viewerID != "" {
		err = s.db.SelectContext(ctx, &fromHistory, `
			SELECT `+summaryColumns+`
			FROM watch_history h
			JOIN videos v ON v.id = h.video_id
			JOIN users u ON u.id = v.owner_id
			WHERE h.user_id = $1 AND v.id != $2 AND v.is_published = true
			ORDER BY h.position DESC
			LIMIT 5`, viewerID, videoID)
		if err != nil {
			return nil, apperr.Internal("failed to load watch history", err)
		}
	}

	merged := MergeRecommendations(videoID, 10, sameOwner, similar, mostViewed, fromHistory)
	for i := range merged {
		merged[i].AttachOwner()
	}

	return merged, nil
}

// MergeRecommendations dedups candidate lists by id in encounter
// order, excluding the seed and truncating to max.
func MergeRecommendations(seedID string, max int, sources ...[]models.VideoSummary) []models.VideoSummary {
	seen := map[string]bool{seedID: true}
	merged := []models.VideoSummary{}

	for _, source := range sources {
		for _, v := range source {
			if seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			merged = append(merged, v)
			if len(merged) >= max {
				return merged
			}
		}
	}

	return merged
}

// tokenPattern builds an OR-of-tokens regex from free text, dropping
// short tokens and escaping regex metacharacters.
func tokenPattern(text string) string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		tokens = append(tokens, regexpQuote(f))
	}
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > 10 {
		tokens = tokens[:10]
	}
	return strings.Join(tokens, "|")
}

func regexpQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
