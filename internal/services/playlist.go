// ===============================
// internal/services/playlist.go - Playlists
// ===============================

package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/jmoiron/sqlx"
)

type PlaylistService struct {
	db *sqlx.DB
}

func NewPlaylistService(db *sqlx.DB) *PlaylistService {
	return &PlaylistService{db: db}
}

// Create makes a playlist. Names are unique per owner, case
// insensitively, enforced by a unique index.
func (s *PlaylistService) Create(ctx context.Context, actorID string, req *models.CreatePlaylistRequest) (*models.Playlist, error) {
	if validationErrors := req.ValidateForCreation(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	var playlist models.Playlist
	err := s.db.GetContext(ctx, &playlist, `
		INSERT INTO playlists (owner_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING *`, actorID, strings.TrimSpace(req.Name), req.Description, isPublic)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("a playlist with this name already exists")
		}
		return nil, apperr.Internal("failed to create playlist", err)
	}

	return &playlist, nil
}

func (s *PlaylistService) owner(ctx context.Context, playlistID string) (string, error) {
	if err := validID(playlistID); err != nil {
		return "", err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID,
		`SELECT owner_id FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("playlist not found")
		}
		return "", apperr.Internal("failed to load playlist", err)
	}
	return ownerID, nil
}

// AddVideo appends a video to the playlist. Duplicates conflict.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID string) error {
	ownerID, err := s.owner(ctx, playlistID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the owner can modify this playlist")
	}
	if err := validID(videoID); err != nil {
		return err
	}

	var exists bool
	err = s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
	if err != nil {
		return apperr.Internal("failed to check video", err)
	}
	if !exists {
		return apperr.NotFound("video not found")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)`, playlistID, videoID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("video is already in this playlist")
		}
		return apperr.Internal("failed to add video to playlist", err)
	}

	return nil
}

// RemoveVideo drops a video from the playlist. Absence is NotFound.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) error {
	ownerID, err := s.owner(ctx, playlistID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the owner can modify this playlist")
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID)
	if err != nil {
		return apperr.Internal("failed to remove video from playlist", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.NotFound("video is not in this playlist")
	}

	return nil
}

// ListByOwner returns a user's playlists with video counts and a
// representative thumbnail. Private playlists appear only to their
// owner.
func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID, viewerID string, page models.PageParams) ([]models.PlaylistSummary, int, error) {
	if err := validID(ownerID); err != nil {
		return nil, 0, err
	}

	where := "p.owner_id = $1"
	if ownerID != viewerID {
		where += " AND p.is_public = true"
	}

	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM playlists p WHERE `+where, ownerID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count playlists", err)
	}

	playlists := []models.PlaylistSummary{}
	err = s.db.SelectContext(ctx, &playlists, `
		SELECT
			p.*,
			(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id) AS total_videos,
			COALESCE((
				SELECT v.thumbnail_url
				FROM playlist_videos pv
				JOIN videos v ON v.id = pv.video_id
				WHERE pv.playlist_id = p.id
				ORDER BY pv.position
				LIMIT 1
			), '') AS first_thumbnail
		FROM playlists p
		WHERE `+where+`
		ORDER BY p.updated_at DESC
		LIMIT $2 OFFSET $3`, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list playlists", err)
	}

	return playlists, total, nil
}

// Detail loads the playlist page header.
func (s *PlaylistService) Detail(ctx context.Context, playlistID, viewerID string) (*models.PlaylistDetail, error) {
	if err := validID(playlistID); err != nil {
		return nil, err
	}

	row := struct {
		models.Playlist
		OwnerUsername        string `db:"owner_username"`
		OwnerFullName        string `db:"owner_full_name"`
		OwnerAvatarURL       string `db:"owner_avatar_url"`
		OwnerSubscriberCount int    `db:"owner_subscriber_count"`
		TotalVideos          int    `db:"total_videos"`
		FirstThumbnail       string `db:"first_thumbnail"`
	}{}

	err := s.db.GetContext(ctx, &row, `
		SELECT
			p.*,
			u.username AS owner_username,
			u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar_url,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = p.owner_id) AS owner_subscriber_count,
			(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id) AS total_videos,
			COALESCE((
				SELECT v.thumbnail_url
				FROM playlist_videos pv
				JOIN videos v ON v.id = pv.video_id
				WHERE pv.playlist_id = p.id
				ORDER BY pv.position
				LIMIT 1
			), '') AS first_thumbnail
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`, playlistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("playlist not found")
		}
		return nil, apperr.Internal("failed to load playlist", err)
	}

	if !row.IsPublic && row.OwnerID != viewerID {
		return nil, apperr.NotFound("playlist not found")
	}

	return &models.PlaylistDetail{
		Playlist: row.Playlist,
		Owner: models.PublicUser{
			ID:        row.OwnerID,
			Username:  row.OwnerUsername,
			FullName:  row.OwnerFullName,
			AvatarURL: row.OwnerAvatarURL,
		},
		OwnerSubscriberCount: row.OwnerSubscriberCount,
		TotalVideos:          row.TotalVideos,
		FirstThumbnail:       row.FirstThumbnail,
	}, nil
}

// Videos returns the playlist's videos in stored order.
func (s *PlaylistService) Videos(ctx context.Context, playlistID, viewerID string, page models.PageParams) ([]models.VideoSummary, int, error) {
	if err := validID(playlistID); err != nil {
		return nil, 0, err
	}

	var playlist models.Playlist
	err := s.db.GetContext(ctx, &playlist,
		`SELECT * FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, apperr.NotFound("playlist not found")
		}
		return nil, 0, apperr.Internal("failed to load playlist", err)
	}
	if !playlist.IsPublic && playlist.OwnerID != viewerID {
		return nil, 0, apperr.NotFound("playlist not found")
	}

	// Unpublished entries stay visible to their owner only
	var total int
	err = s.db.GetContext(ctx, &total, `
		SELECT COUNT(*)
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1 AND (v.is_published OR v.owner_id = $2)`,
		playlistID, nullableID(viewerID))
	if err != nil {
		return nil, 0, apperr.Internal("failed to count playlist videos", err)
	}

	videos := []models.VideoSummary{}
	err = s.db.SelectContext(ctx, &videos, `
		SELECT
			v.id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration, v.views, v.created_at,
			u.id AS owner_id, u.username AS owner_username,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar_url
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $1 AND (v.is_published OR v.owner_id = $2)
		ORDER BY pv.position
		LIMIT $3 OFFSET $4`, playlistID, nullableID(viewerID), page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list playlist videos", err)
	}

	for i := range videos {
		videos[i].AttachOwner()
	}

	return videos, total, nil
}

// Update changes name, description or visibility.
func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID string, req *models.UpdatePlaylistRequest) (*models.Playlist, error) {
	ownerID, err := s.owner(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, apperr.Forbidden("only the owner can update this playlist")
	}

	name := strings.TrimSpace(req.Name)
	if len(name) > models.MaxPlaylistNameLength {
		return nil, apperr.InvalidArgument("name cannot exceed 100 characters")
	}

	var playlist models.Playlist
	err = s.db.GetContext(ctx, &playlist, `
		UPDATE playlists SET
			name = COALESCE(NULLIF($1, ''), name),
			description = COALESCE(NULLIF($2, ''), description),
			is_public = COALESCE($3, is_public),
			updated_at = NOW()
		WHERE id = $4
		RETURNING *`, name, req.Description, req.IsPublic, playlistID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("a playlist with this name already exists")
		}
		return nil, apperr.Internal("failed to update playlist", err)
	}

	return &playlist, nil
}

// Delete removes the playlist and its membership rows via FK cascade.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID string) error {
	ownerID, err := s.owner(ctx, playlistID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the owner can delete this playlist")
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return apperr.Internal("failed to delete playlist", err)
	}

	return nil
}
