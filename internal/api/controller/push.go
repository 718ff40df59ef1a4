package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
)

type pushController struct {
	PushUseCase domain.PushUC
}

func NewPushController(pu domain.PushUC) *pushController {
	return &pushController{
		PushUseCase: pu,
	}
}

type SubscribeReq struct {
	Endpoint string `json:"endpoint"`
	Auth     string `json:"auth"`
	P256dh   string `json:"p256dh"`
}

type UnsubscribeReq struct {
	Endpoint string `json:"endpoint"`
}

// Subscribe godoc
//
//	@Summary		Register a web push subscription
//	@Description	This api stores a web push endpoint for the caller's profile
//	@Tags			push
//	@Accept			json
//	@Produce		json
//	@Param			requestBody	body		SubscribeReq	true	"Description of the request body"
//	@Success		200	{object}	domain.PushSubscription
//	@Router			/push/subscribe [post]
func (pc pushController) Subscribe(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	body := new(SubscribeReq)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sub := domain.PushSubscription{
		ProfileID: user.ProfileID,
		Endpoint:  body.Endpoint,
		Auth:      body.Auth,
		P256dh:    body.P256dh,
	}

	saved, err := pc.PushUseCase.Subscribe(ctx, sub)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return response.SendSuccess(c, saved, "")
}

func (pc pushController) Unsubscribe(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	body := new(UnsubscribeReq)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	err = pc.PushUseCase.Unsubscribe(ctx, user.ProfileID, body.Endpoint)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "subscription removed")
}
