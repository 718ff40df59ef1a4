package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/usecase"
	"github.com/pkg/errors"
)

type callController struct {
	CallUseCase domain.CallUC
}

func NewCallController(cu domain.CallUC) *callController {
	return &callController{
		CallUseCase: cu,
	}
}

type OfferCallReq struct {
	CalleeID    string `json:"calleeId"`
	IsVideoCall bool   `json:"isVideoCall"`
}

type CurrentCallRes struct {
	State      domain.CallState      `json:"state"`
	Invitation domain.CallInvitation `json:"invitation"`
}

// Offer Call godoc
//
//	@Summary		Offer a call
//	@Description	This api places a call invitation; a 409 is returned while another invitation is pending
//	@Tags			call
//	@Accept			json
//	@Produce		json
//	@Param			requestBody	body		OfferCallReq	true	"Description of the request body"
//	@Success		200	{object}	domain.CallInvitation
//	@Router			/call/offer [post]
func (cc callController) OfferCall(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	body := new(OfferCallReq)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	invitation := domain.CallInvitation{
		CallerID:    user.ProfileID,
		CallerName:  user.Name,
		CalleeID:    body.CalleeID,
		IsVideoCall: body.IsVideoCall,
	}

	pending, err := cc.CallUseCase.Offer(ctx, invitation)
	if err != nil {
		if errors.Is(err, usecase.ErrCallInProgress) {
			return response.SendError(c, fiber.StatusConflict, err.Error())
		}
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return response.SendSuccess(c, pending, "")
}

// Accept Call godoc
//
//	@Summary		Accept a pending call
//	@Description	This api accepts the pending invitation; only the callee may answer
//	@Tags			call
//	@Produce		json
//
// @Param           callId  path  string  true  "Call ID being answered"
//
//	@Success		200	{object}	domain.CallInvitation
//	@Router			/call/answer/{callId} [post]
func (cc callController) AcceptCall(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	invitation, err := cc.CallUseCase.Accept(ctx, c.Params("callId"), user.ProfileID)
	if err != nil {
		return response.SendError(c, callErrorStatus(err), err.Error())
	}

	return response.SendSuccess(c, invitation, "call accepted")
}

func (cc callController) RejectCall(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	invitation, err := cc.CallUseCase.Reject(ctx, c.Params("callId"), user.ProfileID)
	if err != nil {
		return response.SendError(c, callErrorStatus(err), err.Error())
	}

	return response.SendSuccess(c, invitation, "call rejected")
}

// Get Current Call godoc
//
//	@Summary		Current call slot
//	@Description	This api returns the call slot state and pending invitation if any
//	@Tags			call
//	@Produce		json
//	@Success		200	{object}	CurrentCallRes
//	@Router			/call/current [get]
func (cc callController) GetCurrentCall(c *fiber.Ctx) error {
	ctx := c.Context()

	if _, err := GetUserFromReq(c); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	invitation, state := cc.CallUseCase.Current(ctx)

	return response.SendSuccess(c, CurrentCallRes{
		State:      state,
		Invitation: invitation,
	}, "")
}

func callErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNoPendingCall), errors.Is(err, usecase.ErrCallMismatch):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrNotCallee):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
