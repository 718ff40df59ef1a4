package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/controller"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

func RegisterChatRoutes(app *fiber.App, cu domain.ChatRoomUC, authService auth.Service) error {
	chatC := controller.NewChatController(cu)

	authMiddleware := AuthenticateUser(authService)

	api := app.Group("/chat")
	api.Get("/rooms", authMiddleware, chatC.GetChatRooms)
	api.Post("/message", authMiddleware, chatC.SendMessage)
	api.Patch("/read/:roomId", authMiddleware, chatC.MarkRoomRead)
	return nil
}
