package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type notificationController struct {
	NotificationUseCase domain.NotificationUC
}

func NewNotificationController(nu domain.NotificationUC) *notificationController {
	return &notificationController{
		NotificationUseCase: nu,
	}
}

type CreateNotificationReq struct {
	RecipientProfileID string                  `json:"recipientProfileId"`
	Title              string                  `json:"title"`
	Message            string                  `json:"message"`
	Type               domain.NotificationType `json:"type"`
}

// NotificationItem decorates a record with the badge the client renders.
type NotificationItem struct {
	domain.Notification
	Badge domain.NotificationBadge `json:"badge"`
}

type NotificationListRes struct {
	Notifications []NotificationItem `json:"notifications"`
	UnreadCount   int64              `json:"unreadCount"`
}

type UnreadCountRes struct {
	UnreadCount int64 `json:"unreadCount"`
}

// Create Notification godoc
//
//	@Summary		Create a notification
//	@Description	This api creates a notification for a recipient profile
//	@Tags			notification
//	@Accept			json
//	@Produce		json
//	@Param			requestBody	body		CreateNotificationReq	true	"Description of the request body"
//	@Success		200	{object}	domain.Notification
//	@Router			/notification/ [post]
func (nc notificationController) CreateNotification(c *fiber.Ctx) error {
	ctx := c.Context()

	body := new(CreateNotificationReq)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if body.RecipientProfileID == "" {
		return response.SendError(c, fiber.StatusBadRequest, "recipient profile is required")
	}

	notification := domain.Notification{
		RecipientProfileID: body.RecipientProfileID,
		Title:              body.Title,
		Message:            body.Message,
		Type:               body.Type,
	}

	inserted, err := nc.NotificationUseCase.Create(ctx, notification)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return response.SendSuccess(c, inserted, "")
}

// Get Notification List godoc
//
//	@Summary		List notifications
//	@Description	This api returns the caller's notifications newest first with badges and unread count
//	@Tags			notification
//	@Produce		json
//	@Success		200	{object}	NotificationListRes
//	@Router			/notification/list [get]
func (nc notificationController) GetNotificationList(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notifications, err := nc.NotificationUseCase.List(ctx, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, "unable to get notifications")
	}

	items := make([]NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, NotificationItem{
			Notification: n,
			Badge:        domain.BadgeForType(n.Type),
		})
	}

	count, err := nc.NotificationUseCase.UnreadCount(ctx, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, "unable to get unread count")
	}

	return response.SendSuccess(c, NotificationListRes{
		Notifications: items,
		UnreadCount:   count,
	}, "")
}

// Get Unread Count godoc
//
//	@Summary		Unread notification count
//	@Description	This api returns the caller's unread notification count
//	@Tags			notification
//	@Produce		json
//	@Success		200	{object}	UnreadCountRes
//	@Router			/notification/unread-count [get]
func (nc notificationController) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	count, err := nc.NotificationUseCase.UnreadCount(ctx, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, "unable to get unread count")
	}

	return response.SendSuccess(c, UnreadCountRes{UnreadCount: count}, "")
}

func (nc notificationController) MarkAsRead(c *fiber.Ctx) error {
	return nc.setRead(c, true)
}

func (nc notificationController) MarkAsUnread(c *fiber.Ctx) error {
	return nc.setRead(c, false)
}

func (nc notificationController) setRead(c *fiber.Ctx, isRead bool) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Params("notificationId"))
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if isRead {
		err = nc.NotificationUseCase.MarkAsRead(ctx, notificationID, user.ProfileID)
	} else {
		err = nc.NotificationUseCase.MarkAsUnread(ctx, notificationID, user.ProfileID)
	}
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "notification updated successfully")
}

func (nc notificationController) MarkAllAsRead(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	err = nc.NotificationUseCase.MarkAllAsRead(ctx, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "all notifications marked read")
}

// Delete Notification godoc
//
//	@Summary		Delete a notification
//	@Description	This api deletes one notification of the caller
//	@Tags			notification
//	@Produce		json
//
// @Param           notificationId  path  string  true  "Notification ID to be removed"
//
//	@Success		200	{object}	response.CommonResponse
//	@Router			/notification/{notificationId} [delete]
func (nc notificationController) DeleteNotification(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Params("notificationId"))
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	err = nc.NotificationUseCase.Delete(ctx, notificationID, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "notification deleted successfully")
}

func (nc notificationController) ClearAllNotifications(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	err = nc.NotificationUseCase.ClearAll(ctx, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "notifications cleared successfully")
}
