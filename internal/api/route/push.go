package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/controller"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

func RegisterPushRoutes(app *fiber.App, pu domain.PushUC, authService auth.Service) error {
	pushC := controller.NewPushController(pu)

	authMiddleware := AuthenticateUser(authService)

	api := app.Group("/push")
	api.Post("/subscribe", authMiddleware, pushC.Subscribe)
	api.Delete("/unsubscribe", authMiddleware, pushC.Unsubscribe)
	return nil
}
