package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/sirupsen/logrus"
)

const AuthTokenHeader = "hw-session-auth-token"

// AuthenticateUser validates the session token and stashes the caller on the
// request context.
func AuthenticateUser(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(AuthTokenHeader)
		if token == "" {
			cookieToken := c.Cookies(AuthTokenHeader)
			if cookieToken == "" {
				return response.SendError(c, fiber.StatusUnauthorized, "token invalid")
			}
			token = cookieToken
		}

		claims, err := authService.FetchJWTToken(token)
		if err != nil {
			logrus.Error(err)
			return response.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}
		if claims.ProfileID == "" {
			return response.SendError(c, fiber.StatusUnauthorized, "Invalid profile")
		}

		userInfo := domain.User{
			ProfileID: claims.ProfileID,
			Name:      claims.Name,
		}
		c.Locals("userInfo", userInfo)
		return c.Next()
	}
}
