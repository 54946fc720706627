// ===============================
// internal/services/reaction.go - Like/Dislike Toggle Engine
// ===============================

package services

import (
	"context"
	"database/sql"
	"errors"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/jmoiron/sqlx"
)

type ReactionService struct {
	db *sqlx.DB
}

func NewReactionService(db *sqlx.DB) *ReactionService {
	return &ReactionService{db: db}
}

var targetTables = map[models.TargetKind]string{
	models.TargetVideo:   "videos",
	models.TargetComment: "comments",
	models.TargetTweet:   "tweets",
}

func (s *ReactionService) targetExists(ctx context.Context, kind models.TargetKind, targetID string) error {
	table, ok := targetTables[kind]
	if !ok {
		return apperr.InvalidArgument("invalid target kind")
	}
	if err := validID(targetID); err != nil {
		return err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`, targetID)
	if err != nil {
		return apperr.Internal("failed to check target", err)
	}
	if !exists {
		return apperr.NotFound(string(kind) + " not found")
	}
	return nil
}

// Toggle applies one press of the like or dislike button.
//
//	no reaction        -> create desired type
//	same type exists   -> remove it
//	other type exists  -> switch in place
//
// Each branch is a single atomic statement; the unique index on
// (user_id, target_kind, target_id) guarantees at most one row per
// pair no matter how many toggles race.
func (s *ReactionService) Toggle(ctx context.Context, actorID string, kind models.TargetKind, targetID string, desired models.ReactionType) (*models.ToggleResult, error) {
	if !kind.Valid() {
		return nil, apperr.InvalidArgument("invalid target kind")
	}
	if !desired.Valid() {
		return nil, apperr.InvalidArgument("invalid reaction type")
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	// Same-type press removes the reaction
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE user_id = $1 AND target_kind = $2 AND target_id = $3 AND type = $4`,
		actorID, kind, targetID, desired)
	if err != nil {
		return nil, apperr.Internal("failed to toggle reaction", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		return &models.ToggleResult{Outcome: models.OutcomeRemoved, Status: nil}, nil
	}

	// Otherwise create, or switch an opposite-type row in place.
	// xmax = 0 distinguishes a fresh insert from a conflict update.
	var inserted bool
	err = s.db.GetContext(ctx, &inserted, `
		INSERT INTO reactions (user_id, target_kind, target_id, type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, target_kind, target_id)
		DO UPDATE SET type = EXCLUDED.type, updated_at = NOW()
		RETURNING (xmax = 0)`,
		actorID, kind, targetID, desired)
	if err != nil {
		return nil, apperr.Internal("failed to toggle reaction", err)
	}

	status := desired
	outcome := models.OutcomeUpdated
	if inserted {
		outcome = models.OutcomeCreated
	}
	return &models.ToggleResult{Outcome: outcome, Status: &status}, nil
}

// Status returns the actor's current reaction on a target, nil when
// there is none.
func (s *ReactionService) Status(ctx context.Context, actorID string, kind models.TargetKind, targetID string) (*models.ReactionStatus, error) {
	if !kind.Valid() {
		return nil, apperr.InvalidArgument("invalid target kind")
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	var reactionType models.ReactionType
	err := s.db.GetContext(ctx, &reactionType, `
		SELECT type FROM reactions
		WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`,
		actorID, kind, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.ReactionStatus{Status: nil}, nil
		}
		return nil, apperr.Internal("failed to load reaction", err)
	}

	return &models.ReactionStatus{Status: &reactionType}, nil
}

// Counts returns like and dislike totals for a target by counting
// reaction rows. No denormalized counters exist to drift.
func (s *ReactionService) Counts(ctx context.Context, kind models.TargetKind, targetID string) (*models.ReactionCounts, error) {
	if !kind.Valid() {
		return nil, apperr.InvalidArgument("invalid target kind")
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	var counts models.ReactionCounts
	err := s.db.GetContext(ctx, &counts, `
		SELECT
			COUNT(*) FILTER (WHERE type = 'like') AS like_count,
			COUNT(*) FILTER (WHERE type = 'dislike') AS dislike_count
		FROM reactions
		WHERE target_kind = $1 AND target_id = $2`, kind, targetID)
	if err != nil {
		return nil, apperr.Internal("failed to count reactions", err)
	}

	return &counts, nil
}
