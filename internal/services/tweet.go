// ===============================
// internal/services/tweet.go - Community Posts
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

type TweetService struct {
	db *sqlx.DB
}

func NewTweetService(db *sqlx.DB) *TweetService {
	return &TweetService{db: db}
}

func (s *TweetService) Create(ctx context.Context, actorID string, req *models.TweetContentRequest) (*models.Tweet, error) {
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}

	var tweet models.Tweet
	err := s.db.GetContext(ctx, &tweet, `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING *`, actorID, strings.TrimSpace(req.Content))
	if err != nil {
		return nil, apperr.Internal("failed to create post", err)
	}

	return &tweet, nil
}

// ListByUser returns a user's posts, newest first, with reaction
// counts aggregated per row.
func (s *TweetService) ListByUser(ctx context.Context, userID string, page models.PageParams) ([]models.TweetWithCounts, int, error) {
	if err := validID(userID); err != nil {
		return nil, 0, err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to check user", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("user not found")
	}

	var total int
	err = s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count posts", err)
	}

	tweets := []models.TweetWithCounts{}
	err = s.db.SelectContext(ctx, &tweets, `
		SELECT
			t.*,
			u.username AS owner_username,
			u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar_url,
			COUNT(r.id) FILTER (WHERE r.type = 'like') AS like_count,
			COUNT(r.id) FILTER (WHERE r.type = 'dislike') AS dislike_count
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		LEFT JOIN reactions r ON r.target_kind = 'tweet' AND r.target_id = t.id
		WHERE t.owner_id = $1
		GROUP BY t.id, u.username, u.full_name, u.avatar_url
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list posts", err)
	}

	for i := range tweets {
		tweets[i].AttachOwner()
	}

	return tweets, total, nil
}

func (s *TweetService) Update(ctx context.Context, tweetID, actorID string, req *models.TweetContentRequest) (*models.Tweet, error) {
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}
	if err := validID(tweetID); err != nil {
		return nil, err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID,
		`SELECT owner_id FROM tweets WHERE id = $1`, tweetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}
	if ownerID != actorID {
		return nil, apperr.Forbidden("only the author can update this post")
	}

	var tweet models.Tweet
	err = s.db.GetContext(ctx, &tweet, `
		UPDATE tweets SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *`, strings.TrimSpace(req.Content), tweetID)
	if err != nil {
		return nil, apperr.Internal("failed to update post", err)
	}

	return &tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, tweetID, actorID string) error {
	if err := validID(tweetID); err != nil {
		return err
	}

	var ownerID string
	err := s.db.GetContext(ctx, &ownerID,
		`SELECT owner_id FROM tweets WHERE id = $1`, tweetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal("failed to load post", err)
	}
	if ownerID != actorID {
		return apperr.Forbidden("only the author can delete this post")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reactions WHERE target_kind = 'tweet' AND target_id = $1`,
		tweetID); err != nil {
		return apperr.Internal("failed to delete post reactions", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tweets WHERE id = $1`, tweetID); err != nil {
		return apperr.Internal("failed to delete post", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal("failed to commit post deletion", err)
	}

	return nil
}
