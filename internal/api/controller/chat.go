package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatController struct {
	ChatRoomUseCase domain.ChatRoomUC
}

func NewChatController(cu domain.ChatRoomUC) *chatController {
	return &chatController{
		ChatRoomUseCase: cu,
	}
}

type SendMessageReq struct {
	RecipientID   string `json:"recipientId"`
	RecipientName string `json:"recipientName"`
	Body          string `json:"body"`
}

type ListRoomsRes struct {
	Rooms []domain.RoomSummary `json:"rooms"`
}

// Send Message godoc
//
//	@Summary		Send a message
//	@Description	This api records a message and updates the pair's chat room
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			requestBody	body		SendMessageReq	true	"Description of the request body"
//	@Success		200	{object}	domain.ChatRoom
//	@Router			/chat/message [post]
func (cc chatController) SendMessage(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	body := new(SendMessageReq)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if body.RecipientID == "" || body.Body == "" {
		return response.SendError(c, fiber.StatusBadRequest, "recipient and body are required")
	}

	message := domain.ChatMessage{
		SenderID:      user.ProfileID,
		SenderName:    user.Name,
		RecipientID:   body.RecipientID,
		RecipientName: body.RecipientName,
		Body:          body.Body,
		SentAt:        time.Now(),
	}

	room, err := cc.ChatRoomUseCase.RecordMessage(ctx, message)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, room, "")
}

// Get Chat Rooms godoc
//
//	@Summary		List chat rooms
//	@Description	This api returns the caller's conversation list, optionally filtered by query
//	@Tags			chat
//	@Produce		json
//
// @Param           query  query  string  false  "Search over the other participant's name or last message"
//
//	@Success		200	{object}	ListRoomsRes
//	@Router			/chat/rooms [get]
func (cc chatController) GetChatRooms(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	query := c.Query("query", "")

	rooms, err := cc.ChatRoomUseCase.ListRooms(ctx, user.ProfileID, query, time.Now())
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, "unable to get chat rooms")
	}

	return response.SendSuccess(c, ListRoomsRes{Rooms: rooms}, "")
}

// Mark Room Read godoc
//
//	@Summary		Mark a chat room read
//	@Description	This api resets the caller's unread counter for a room
//	@Tags			chat
//	@Produce		json
//
// @Param           roomId  path  string  true  "Room ID to be marked read"
//
//	@Success		200	{object}	response.CommonResponse
//	@Router			/chat/read/{roomId} [patch]
func (cc chatController) MarkRoomRead(c *fiber.Ctx) error {
	ctx := c.Context()

	user, err := GetUserFromReq(c)
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	roomID, err := primitive.ObjectIDFromHex(c.Params("roomId"))
	if err != nil {
		return response.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	err = cc.ChatRoomUseCase.MarkRoomRead(ctx, roomID, user.ProfileID)
	if err != nil {
		return response.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.SendSuccess(c, nil, "Chat counter updated successfully")
}
