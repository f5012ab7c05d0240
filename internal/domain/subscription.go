package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `json:"subscriber" gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair"`
	ChannelID    uuid.UUID `json:"channel" gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair;index"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relations
	Subscriber *User `json:"subscriberUser,omitempty" gorm:"foreignKey:SubscriberID"`
	Channel    *User `json:"channelUser,omitempty" gorm:"foreignKey:ChannelID"`
}
