// ===============================
// internal/services/subscription.go - Channel Subscriptions
// ===============================

package services

import (
	"context"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type SubscriptionService struct {
	db *sqlx.DB
}

func NewSubscriptionService(db *sqlx.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) channelExists(ctx context.Context, channelID string) error {
	if err := validID(channelID); err != nil {
		return err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, channelID)
	if err != nil {
		return apperr.Internal("failed to check channel", err)
	}
	if !exists {
		return apperr.NotFound("channel not found")
	}
	return nil
}

// Toggle flips the subscription state and returns the new state. Same
// shape as the reaction toggle: delete first, insert on miss, each a
// single atomic statement backed by the unique index.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error) {
	if subscriberID == channelID {
		return nil, apperr.InvalidArgument("cannot subscribe to your own channel")
	}
	if err := s.channelExists(ctx, channelID); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to toggle subscription", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		return &models.SubscriptionToggleResult{Subscribed: false}, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to toggle subscription", err)
	}

	return &models.SubscriptionToggleResult{Subscribed: true}, nil
}

// IsSubscribed reports whether subscriber follows channel.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if err := s.channelExists(ctx, channelID); err != nil {
		return false, err
	}

	var subscribed bool
	err := s.db.GetContext(ctx, &subscribed, `
		SELECT EXISTS(
			SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
		)`, subscriberID, channelID)
	if err != nil {
		return false, apperr.Internal("failed to check subscription", err)
	}

	return subscribed, nil
}

// ChannelSubscribers lists the users subscribed to a channel. Each row
// is annotated with whether the viewer subscribes back to that user.
func (s *SubscriptionService) ChannelSubscribers(ctx context.Context, channelID, viewerID string, page models.PageParams) ([]models.ChannelListItem, int, error) {
	if err := s.channelExists(ctx, channelID); err != nil {
		return nil, 0, err
	}

	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count subscribers", err)
	}

	items := []models.ChannelListItem{}
	err = s.db.SelectContext(ctx, &items, `
		SELECT u.id, u.username, u.full_name, u.avatar_url, s.created_at AS subscribed_since
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`, channelID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to list subscribers", err)
	}

	if err := s.annotateReciprocity(ctx, viewerID, items); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// SubscribedChannels lists channels the user follows, optionally
// filtered by a name/username search term.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID, viewerID, query string, page models.PageParams) ([]models.ChannelListItem, int, error) {
	if err := validID(subscriberID); err != nil {
		return nil, 0, err
	}

	where := "s.subscriber_id = $1"
	args := []interface{}{subscriberID}

	if q := strings.TrimSpace(query); q != "" {
		where += " AND (u.username ILIKE $2 OR u.full_name ILIKE $2)"
		args = append(args, "%"+q+"%")
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE ` + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, apperr.Internal("failed to count subscriptions", err)
	}

	listQuery := `
		SELECT u.id, u.username, u.full_name, u.avatar_url, s.created_at AS subscribed_since
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE ` + where + `
		ORDER BY s.created_at DESC`
	if len(args) == 1 {
		listQuery += " LIMIT $2 OFFSET $3"
	} else {
		listQuery += " LIMIT $3 OFFSET $4"
	}
	args = append(args, page.Limit, page.Offset())

	items := []models.ChannelListItem{}
	if err := s.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return nil, 0, apperr.Internal("failed to list subscriptions", err)
	}

	if err := s.annotateReciprocity(ctx, viewerID, items); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// annotateReciprocity marks which listed users the viewer subscribes
// to, using one batch query over the page's id set.
func (s *SubscriptionService) annotateReciprocity(ctx context.Context, viewerID string, items []models.ChannelListItem) error {
	if viewerID == "" || len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	subscribed := []string{}
	err := s.db.SelectContext(ctx, &subscribed, `
		SELECT channel_id FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = ANY($2)`,
		viewerID, pq.Array(ids))
	if err != nil {
		return apperr.Internal("failed to annotate subscriptions", err)
	}

	set := make(map[string]bool, len(subscribed))
	for _, id := range subscribed {
		set[id] = true
	}
	for i := range items {
		items[i].IsSubscribedByMe = set[items[i].ID]
	}

	return nil
}
