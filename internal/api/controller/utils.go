package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

func GetUserFromReq(c *fiber.Ctx) (domain.User, error) {
	userInfo, ok := c.Locals("userInfo").(domain.User)
	if !ok {
		return userInfo, errors.New("unable to authenticate user")
	}
	return userInfo, nil
}
