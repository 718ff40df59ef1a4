package usecase

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/realtime"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/timeutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrSelfConversation = errors.New("sender and recipient must differ")
	ErrNotParticipant   = errors.New("profile is not a participant of the room")
)

type chatRoomUC struct {
	chatRoomRepo   domain.ChatRoomRepository
	hub            *realtime.Hub
	contextTimeout time.Duration
}

func NewChatRoomUC(cr domain.ChatRoomRepository, hub *realtime.Hub, timeout time.Duration) domain.ChatRoomUC {
	return &chatRoomUC{
		chatRoomRepo:   cr,
		hub:            hub,
		contextTimeout: timeout,
	}
}

// RecordMessage upserts the pair's room and applies the denormalized
// last-message update. The room is created on the first message between two
// participants.
func (cu *chatRoomUC) RecordMessage(ctx context.Context, message domain.ChatMessage) (domain.ChatRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.contextTimeout)
	defer cancel()

	if message.SenderID == message.RecipientID {
		return domain.ChatRoom{}, ErrSelfConversation
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}

	room, err := cu.chatRoomRepo.Upsert(ctx, message.SenderID, message.SenderName, message.RecipientID, message.RecipientName)
	if err != nil {
		return domain.ChatRoom{}, errors.Wrap(err, "unable to upsert chat room")
	}

	updated, err := cu.chatRoomRepo.RecordMessage(ctx, room.ID, message.RecipientID, message.Body, message.SentAt)
	if err != nil {
		return domain.ChatRoom{}, errors.Wrap(err, "unable to record message")
	}

	if cu.hub != nil {
		cu.hub.Push(message.RecipientID, realtime.Event{
			Name: realtime.EventChatMessage,
			Data: summarize(updated, message.RecipientID, message.SentAt),
		})
	}

	return updated, nil
}

// ListRooms projects the viewer's conversation list: filtered by the search
// query, newest message first, other-participant fields computed at read
// time. The underlying set is never mutated by the query.
func (cu *chatRoomUC) ListRooms(ctx context.Context, profileID, query string, now time.Time) ([]domain.RoomSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.contextTimeout)
	defer cancel()

	rooms, err := cu.chatRoomRepo.ListByParticipant(ctx, profileID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list chat rooms")
	}

	summaries := []domain.RoomSummary{}
	for _, room := range rooms {
		if !room.MatchesQuery(profileID, query) {
			continue
		}
		summaries = append(summaries, summarize(room, profileID, now))
	}

	return summaries, nil
}

func (cu *chatRoomUC) MarkRoomRead(ctx context.Context, roomID primitive.ObjectID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, cu.contextTimeout)
	defer cancel()

	room, err := cu.chatRoomRepo.GetByID(ctx, roomID)
	if err != nil {
		return errors.Wrap(err, "unable to fetch chat room")
	}
	if !room.HasParticipant(profileID) {
		return ErrNotParticipant
	}

	return cu.chatRoomRepo.ResetUnread(ctx, roomID, profileID)
}

func summarize(room domain.ChatRoom, profileID string, now time.Time) domain.RoomSummary {
	otherID, otherName := room.OtherParticipant(profileID)
	return domain.RoomSummary{
		RoomID:               room.ID,
		OtherParticipantID:   otherID,
		OtherParticipantName: otherName,
		LastMessage:          room.LastMessage,
		LastMessageTime:      room.LastMessageTime,
		LastMessageLabel:     timeutil.FormatRelativeTime(now, room.LastMessageTime),
		UnreadCount:          room.UnreadFor(profileID),
	}
}
