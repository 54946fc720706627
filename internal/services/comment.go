// ===============================
// internal/services/comment.go - Video Comments
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

type CommentService struct {
	db *sqlx.DB
}

func NewCommentService(db *sqlx.DB) *CommentService {
	return &CommentService{db: db}
}

// Add creates a comment on a video.
func (s *CommentService) Add(ctx context.Context, videoID, actorID string, req *models.CommentContentRequest) (*models.Comment, error) {
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}
	if err := validID(videoID); err != nil {
		return nil, err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to check video", err)
	}
	if !exists {
		return nil, apperr.NotFound("video not found")
	}

	var comment models.Comment
	err = s.db.GetContext(ctx, &comment, `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING *`, videoID, actorID, strings.TrimSpace(req.Content))
	if err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}

	return &comment, nil
}

// Update replaces the content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, commentID, actorID string, req *models.CommentContentRequest) (*models.Comment, error) {
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}
	if err := validID(commentID); err != nil {
		return nil, err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID,
		`SELECT owner_id FROM comments WHERE id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Internal("failed to load comment", err)
	}
	if ownerID != actorID {
		return nil, apperr.Forbidden("only the author can update this comment")
	}

	var comment models.Comment
	err = s.db.GetContext(ctx, &comment, `
		UPDATE comments SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *`, strings.TrimSpace(req.Content), commentID)
	if err != nil {
		return nil, apperr.Internal("failed to update comment", err)
	}

	return &comment, nil
}

// Delete removes a comment and its reactions. Only the author may
// delete.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID string) error {
	if err := validID(commentID); err != nil {
		return err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID,
		`SELECT owner_id FROM comments WHERE id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("comment not found")
		}
		return apperr.Internal("failed to load comment", err)
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the author can delete this comment")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reactions WHERE target_kind = 'comment' AND target_id = $1`,
		commentID); err != nil {
		return apperr.Internal("failed to delete comment reactions", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return apperr.Internal("failed to delete comment", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal("failed to commit comment deletion", err)
	}

	return nil
}

// ListByVideo returns a video's comments, newest first, with authors.
func (s *CommentService) ListByVideo(ctx context.Context, videoID string, page models.PageParams) ([]models.CommentWithOwner, int, error) {
	if err := validID(videoID); err != nil {
		return nil, 0, err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to check video", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("video not found")
	}

	var total int
	err = s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count comments", err)
	}

	comments := []models.CommentWithOwner{}
	err = s.db.SelectContext(ctx, &comments, `
		SELECT
			c.*,
			u.username AS owner_username,
			u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar_url
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`, videoID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list comments", err)
	}

	for i := range comments {
		comments[i].AttachOwner()
	}

	return comments, total, nil
}
