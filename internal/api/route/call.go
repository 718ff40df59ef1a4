package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/controller"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

func RegisterCallRoutes(app *fiber.App, cu domain.CallUC, authService auth.Service) error {
	callC := controller.NewCallController(cu)

	authMiddleware := AuthenticateUser(authService)

	api := app.Group("/call")
	api.Post("/offer", authMiddleware, callC.OfferCall)
	api.Post("/answer/:callId", authMiddleware, callC.AcceptCall)
	api.Post("/reject/:callId", authMiddleware, callC.RejectCall)
	api.Get("/current", authMiddleware, callC.GetCurrentCall)
	return nil
}
