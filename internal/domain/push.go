package domain

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionPushSubscription = "pushSubscriptions"
)

// PushSubscription is a browser/device web-push endpoint for a profile.
type PushSubscription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID string             `bson:"profileId" json:"profileId"`
	Endpoint  string             `bson:"endpoint" json:"endpoint"`
	Auth      string             `bson:"auth" json:"auth"`
	P256dh    string             `bson:"p256dh" json:"p256dh"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (p *PushSubscription) FromWebPush(s *webpush.Subscription) {
	p.Endpoint = s.Endpoint
	p.Auth = s.Keys.Auth
	p.P256dh = s.Keys.P256dh
}

func (p *PushSubscription) ToWebPush() *webpush.Subscription {
	return &webpush.Subscription{
		Endpoint: p.Endpoint,
		Keys: webpush.Keys{
			Auth:   p.Auth,
			P256dh: p.P256dh,
		},
	}
}

type PushSubscriptionRepository interface {
	Save(ctx context.Context, sub PushSubscription) (PushSubscription, error)
	Remove(ctx context.Context, profileID, endpoint string) error
	ListByProfile(ctx context.Context, profileID string) ([]PushSubscription, error)
}

type PushUC interface {
	Subscribe(ctx context.Context, sub PushSubscription) (PushSubscription, error)
	Unsubscribe(ctx context.Context, profileID, endpoint string) error
	PushToProfile(ctx context.Context, profileID string, payload []byte) error
}
