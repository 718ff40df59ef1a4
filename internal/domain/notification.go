package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionNotification = "notifications"
)

// NotificationType is the closed set of notification categories the app renders.
type NotificationType string

const (
	NotificationJobAlert NotificationType = "JOB_ALERT"
	NotificationMessage  NotificationType = "MESSAGE"
	NotificationSystem   NotificationType = "SYSTEM"
	NotificationGeneral  NotificationType = "GENERAL"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationJobAlert, NotificationMessage, NotificationSystem, NotificationGeneral:
		return true
	}
	return false
}

// NotificationBadge is the icon/color pair a client renders for a type.
type NotificationBadge struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var notificationBadges = map[NotificationType]NotificationBadge{
	NotificationJobAlert: {Icon: "work", Color: "#1E88E5"},
	NotificationMessage:  {Icon: "chat", Color: "#43A047"},
	NotificationSystem:   {Icon: "settings", Color: "#FB8C00"},
	NotificationGeneral:  {Icon: "notifications", Color: "#757575"},
}

// BadgeForType is total over the closed type set; unknown types fall back to GENERAL.
func BadgeForType(t NotificationType) NotificationBadge {
	if badge, ok := notificationBadges[t]; ok {
		return badge
	}
	return notificationBadges[NotificationGeneral]
}

type Notification struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientProfileID string             `bson:"recipientProfileId" json:"recipientProfileId"`
	Title              string             `bson:"title" json:"title"`
	Message            string             `bson:"message" json:"message"`
	Type               NotificationType   `bson:"type" json:"type"`
	IsRead             bool               `bson:"isRead" json:"isRead"`
	CreatedDate        time.Time          `bson:"createdDate" json:"createdDate"`
}

type NotificationRepository interface {
	Create(ctx context.Context, notification Notification) (Notification, error)
	GetByID(ctx context.Context, id primitive.ObjectID, profileID string) (Notification, error)
	List(ctx context.Context, profileID string) ([]Notification, error)
	SetRead(ctx context.Context, id primitive.ObjectID, profileID string, isRead bool) (bool, error)
	SetAllRead(ctx context.Context, profileID string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID, profileID string) (bool, error)
	DeleteAll(ctx context.Context, profileID string) (int64, error)
	CountUnread(ctx context.Context, profileID string) (int64, error)
}

type NotificationUC interface {
	Create(ctx context.Context, notification Notification) (Notification, error)
	List(ctx context.Context, profileID string) ([]Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID, profileID string) error
	MarkAsUnread(ctx context.Context, id primitive.ObjectID, profileID string) error
	MarkAllAsRead(ctx context.Context, profileID string) error
	Delete(ctx context.Context, id primitive.ObjectID, profileID string) error
	ClearAll(ctx context.Context, profileID string) error
	UnreadCount(ctx context.Context, profileID string) (int64, error)
}
