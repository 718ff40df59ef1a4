package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/pkg/errors"
)

// VapidConfig holds the web-push signing material.
type VapidConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
}

const pushTTL = 30

type pushUC struct {
	pushRepo       domain.PushSubscriptionRepository
	vapid          VapidConfig
	contextTimeout time.Duration
}

func NewPushUC(pr domain.PushSubscriptionRepository, vapid VapidConfig, timeout time.Duration) domain.PushUC {
	return &pushUC{
		pushRepo:       pr,
		vapid:          vapid,
		contextTimeout: timeout,
	}
}

func (pu *pushUC) Subscribe(ctx context.Context, sub domain.PushSubscription) (domain.PushSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	if sub.ProfileID == "" || sub.Endpoint == "" {
		return domain.PushSubscription{}, errors.New("profile and endpoint are required")
	}

	return pu.pushRepo.Save(ctx, sub)
}

func (pu *pushUC) Unsubscribe(ctx context.Context, profileID, endpoint string) error {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()
	return pu.pushRepo.Remove(ctx, profileID, endpoint)
}

// PushToProfile sends the payload to every subscription of the profile.
// Failed endpoints are counted, not retried.
func (pu *pushUC) PushToProfile(ctx context.Context, profileID string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	subs, err := pu.pushRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return errors.Wrap(err, "unable to list push subscriptions")
	}

	pushErrors := map[string]error{}
	for _, sub := range subs {
		resp, err := webpush.SendNotification(payload, sub.ToWebPush(), &webpush.Options{
			Subscriber:      pu.vapid.Subscriber,
			VAPIDPublicKey:  pu.vapid.PublicKey,
			VAPIDPrivateKey: pu.vapid.PrivateKey,
			TTL:             pushTTL,
		})
		if err != nil {
			pushErrors[sub.Endpoint] = err
			continue
		}
		resp.Body.Close()
	}

	if len(pushErrors) > 0 {
		return errors.New(fmt.Sprintf("Failed to send %d notifications", len(pushErrors)))
	}
	return nil
}
