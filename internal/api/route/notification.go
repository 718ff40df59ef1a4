package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/controller"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

func RegisterNotificationRoutes(app *fiber.App, nu domain.NotificationUC, authService auth.Service) error {
	notificationC := controller.NewNotificationController(nu)

	authMiddleware := AuthenticateUser(authService)

	api := app.Group("/notification")
	api.Get("/list", authMiddleware, notificationC.GetNotificationList)
	api.Get("/unread-count", authMiddleware, notificationC.GetUnreadCount)
	api.Post("/", authMiddleware, notificationC.CreateNotification)
	api.Patch("/read-all", authMiddleware, notificationC.MarkAllAsRead)
	api.Patch("/read/:notificationId", authMiddleware, notificationC.MarkAsRead)
	api.Patch("/unread/:notificationId", authMiddleware, notificationC.MarkAsUnread)
	api.Delete("/clear", authMiddleware, notificationC.ClearAllNotifications)
	api.Delete("/:notificationId", authMiddleware, notificationC.DeleteNotification)
	return nil
}
