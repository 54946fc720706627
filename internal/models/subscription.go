package models

import "time"

type Subscription struct {
	ID           string    `json:"id" db:"id"`
	SubscriberID string    `json:"subscriberId" db:"subscriber_id"`
	ChannelID    string    `json:"channelId" db:"channel_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SubscriptionToggleResult reports the state after a toggle.
type SubscriptionToggleResult struct {
	Subscribed bool `json:"subscribed"`
}

// ChannelListItem is a row in subscriber / subscribed-channel listings.
// IsSubscribedByMe marks reciprocity from the requesting user's side.
type ChannelListItem struct {
	ID               string    `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	FullName         string    `json:"fullName" db:"full_name"`
	AvatarURL        string    `json:"avatar" db:"avatar_url"`
	SubscribedSince  time.Time `json:"subscribedSince" db:"subscribed_since"`
	IsSubscribedByMe bool      `json:"isSubscribedByMe" db:"-"`
}
