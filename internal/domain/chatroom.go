package domain

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionChatRoom = "chatRooms"
)

// ChatRoom is the backend-symmetric summary of a two-party conversation.
// Per-viewer fields (other participant, unread count) are projected at read
// time, never stored per viewer.
type ChatRoom struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PairKey          string             `bson:"pairKey" json:"-"`
	Participant1ID   string             `bson:"participant1Id" json:"participant1Id"`
	Participant1Name string             `bson:"participant1Name" json:"participant1Name"`
	Participant2ID   string             `bson:"participant2Id" json:"participant2Id"`
	Participant2Name string             `bson:"participant2Name" json:"participant2Name"`
	LastMessage      string             `bson:"lastMessage" json:"lastMessage"`
	LastMessageTime  time.Time          `bson:"lastMessageTime" json:"lastMessageTime"`
	UnreadCount1     int64              `bson:"unreadCount1" json:"-"`
	UnreadCount2     int64              `bson:"unreadCount2" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoomSummary is the per-viewer projection of a ChatRoom used by the
// conversation list.
type RoomSummary struct {
	RoomID               primitive.ObjectID `json:"roomId"`
	OtherParticipantID   string             `json:"otherParticipantId"`
	OtherParticipantName string             `json:"otherParticipantName"`
	LastMessage          string             `json:"lastMessage"`
	LastMessageTime      time.Time          `json:"lastMessageTime"`
	LastMessageLabel     string             `json:"lastMessageLabel"`
	UnreadCount          int64              `json:"unreadCount"`
}

// PairKey builds the canonical key for an unordered participant pair. Exactly
// one room may exist per key.
func PairKey(profileA, profileB string) string {
	if profileA > profileB {
		profileA, profileB = profileB, profileA
	}
	return profileA + "|" + profileB
}

// OtherParticipant returns the id and name of whichever participant is not
// the viewer. Pure projection, no side effects.
func (r ChatRoom) OtherParticipant(profileID string) (string, string) {
	if profileID == r.Participant1ID {
		return r.Participant2ID, r.Participant2Name
	}
	return r.Participant1ID, r.Participant1Name
}

// UnreadFor returns the viewer's unread counter.
func (r ChatRoom) UnreadFor(profileID string) int64 {
	if profileID == r.Participant1ID {
		return r.UnreadCount1
	}
	return r.UnreadCount2
}

// HasParticipant reports whether the profile is one of the two participants.
func (r ChatRoom) HasParticipant(profileID string) bool {
	return profileID == r.Participant1ID || profileID == r.Participant2ID
}

// MatchesQuery does a case-insensitive substring match against the other
// participant's name or the last message body.
func (r ChatRoom) MatchesQuery(profileID, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	_, otherName := r.OtherParticipant(profileID)
	return strings.Contains(strings.ToLower(otherName), query) ||
		strings.Contains(strings.ToLower(r.LastMessage), query)
}

// ChatMessage is an inbound message used to update the directory.
type ChatMessage struct {
	SenderID      string    `json:"senderId"`
	SenderName    string    `json:"senderName"`
	RecipientID   string    `json:"recipientId"`
	RecipientName string    `json:"recipientName"`
	Body          string    `json:"body"`
	SentAt        time.Time `json:"sentAt"`
}

type ChatRoomRepository interface {
	Upsert(ctx context.Context, senderID, senderName, recipientID, recipientName string) (ChatRoom, error)
	GetByID(ctx context.Context, roomID primitive.ObjectID) (ChatRoom, error)
	RecordMessage(ctx context.Context, roomID primitive.ObjectID, recipientID, body string, at time.Time) (ChatRoom, error)
	ResetUnread(ctx context.Context, roomID primitive.ObjectID, profileID string) error
	ListByParticipant(ctx context.Context, profileID string) ([]ChatRoom, error)
}

type ChatRoomUC interface {
	RecordMessage(ctx context.Context, message ChatMessage) (ChatRoom, error)
	ListRooms(ctx context.Context, profileID, query string, now time.Time) ([]RoomSummary, error)
	MarkRoomRead(ctx context.Context, roomID primitive.ObjectID, profileID string) error
}
