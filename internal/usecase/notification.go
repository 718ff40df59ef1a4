package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/cache"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/realtime"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrInvalidNotificationType = errors.New("invalid notification type")

type notificationUC struct {
	notificationRepo domain.NotificationRepository
	cache            *cache.Cache
	hub              *realtime.Hub
	pushUC           domain.PushUC
	contextTimeout   time.Duration
}

func NewNotificationUC(nr domain.NotificationRepository, c *cache.Cache, hub *realtime.Hub, pushUC domain.PushUC, timeout time.Duration) domain.NotificationUC {
	return &notificationUC{
		notificationRepo: nr,
		cache:            c,
		hub:              hub,
		pushUC:           pushUC,
		contextTimeout:   timeout,
	}
}

func unreadCountKey(profileID string) string {
	return fmt.Sprintf("notification:unread:%s", profileID)
}

func (nu *notificationUC) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	if !notification.Type.Valid() {
		return domain.Notification{}, ErrInvalidNotificationType
	}
	if notification.CreatedDate.IsZero() {
		notification.CreatedDate = time.Now()
	}
	notification.IsRead = false

	inserted, err := nu.notificationRepo.Create(ctx, notification)
	if err != nil {
		return domain.Notification{}, errors.Wrap(err, "error while creating notification object")
	}

	nu.adjustUnreadCounter(inserted.RecipientProfileID, 1)

	if nu.hub != nil {
		nu.hub.Push(inserted.RecipientProfileID, realtime.Event{
			Name: realtime.EventNotification,
			Data: inserted,
		})
	}

	if nu.pushUC != nil {
		payload, err := json.Marshal(inserted)
		if err == nil {
			err = nu.pushUC.PushToProfile(ctx, inserted.RecipientProfileID, payload)
		}
		if err != nil {
			logrus.Error("unable to web push notification: ", err)
		}
	}

	return inserted, nil
}

func (nu *notificationUC) List(ctx context.Context, profileID string) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()
	return nu.notificationRepo.List(ctx, profileID)
}

// MarkAsRead is idempotent: the counter only moves when the record actually
// flipped from unread to read.
func (nu *notificationUC) MarkAsRead(ctx context.Context, id primitive.ObjectID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	modified, err := nu.notificationRepo.SetRead(ctx, id, profileID, true)
	if err != nil {
		return errors.Wrap(err, "unable to mark notification read")
	}
	if modified {
		nu.adjustUnreadCounter(profileID, -1)
	}
	return nil
}

func (nu *notificationUC) MarkAsUnread(ctx context.Context, id primitive.ObjectID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	modified, err := nu.notificationRepo.SetRead(ctx, id, profileID, false)
	if err != nil {
		return errors.Wrap(err, "unable to mark notification unread")
	}
	if modified {
		nu.adjustUnreadCounter(profileID, 1)
	}
	return nil
}

func (nu *notificationUC) MarkAllAsRead(ctx context.Context, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	_, err := nu.notificationRepo.SetAllRead(ctx, profileID)
	if err != nil {
		return errors.Wrap(err, "unable to mark all notifications read")
	}

	nu.setUnreadCounter(profileID, 0)
	return nil
}

// Delete removes exactly the matching record, or no-ops when absent.
func (nu *notificationUC) Delete(ctx context.Context, id primitive.ObjectID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	existing, err := nu.notificationRepo.GetByID(ctx, id, profileID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// absent record, nothing to delete
			return nil
		}
		return errors.Wrap(err, "unable to fetch notification")
	}

	deleted, err := nu.notificationRepo.Delete(ctx, id, profileID)
	if err != nil {
		return errors.Wrap(err, "unable to delete notification")
	}
	if deleted && !existing.IsRead {
		nu.adjustUnreadCounter(profileID, -1)
	}
	return nil
}

func (nu *notificationUC) ClearAll(ctx context.Context, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	_, err := nu.notificationRepo.DeleteAll(ctx, profileID)
	if err != nil {
		return errors.Wrap(err, "unable to clear notifications")
	}

	nu.setUnreadCounter(profileID, 0)
	return nil
}

// UnreadCount serves the denormalized redis counter and reconciles it from
// the store on a miss.
func (nu *notificationUC) UnreadCount(ctx context.Context, profileID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, nu.contextTimeout)
	defer cancel()

	if nu.cache != nil {
		val, err := nu.cache.GetValue(unreadCountKey(profileID))
		if err == nil {
			count, parseErr := strconv.ParseInt(val, 10, 64)
			if parseErr == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := nu.notificationRepo.CountUnread(ctx, profileID)
	if err != nil {
		return 0, errors.Wrap(err, "unable to count unread notifications")
	}

	nu.setUnreadCounter(profileID, count)
	return count, nil
}

func (nu *notificationUC) adjustUnreadCounter(profileID string, delta int64) {
	if nu.cache == nil {
		return
	}
	key := unreadCountKey(profileID)
	count, err := nu.cache.IncrBy(key, delta)
	if err != nil {
		logrus.Debug("unable to adjust unread counter: ", err)
		return
	}
	if count < 0 {
		// counter drifted, drop it so the next read reconciles from mongo
		if err := nu.cache.DeleteValue(key); err != nil {
			logrus.Debug("unable to drop unread counter: ", err)
		}
		return
	}
	nu.cache.ExpireKey(key, cache.Expire24HR)
}

func (nu *notificationUC) setUnreadCounter(profileID string, count int64) {
	if nu.cache == nil {
		return
	}
	key := unreadCountKey(profileID)
	if err := nu.cache.SetValue(key, strconv.FormatInt(count, 10)); err != nil {
		logrus.Debug("unable to set unread counter: ", err)
		return
	}
	nu.cache.ExpireKey(key, cache.Expire24HR)
}
