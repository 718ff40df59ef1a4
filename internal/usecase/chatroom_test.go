package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memChatRoomRepo mirrors the mongo repository semantics in memory: one room
// per pair key, canonical participant ordering, denormalized last-message
// fields.
type memChatRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]*domain.ChatRoom
}

func newMemChatRoomRepo() *memChatRoomRepo {
	return &memChatRoomRepo{rooms: map[string]*domain.ChatRoom{}}
}

func (m *memChatRoomRepo) Upsert(ctx context.Context, senderID, senderName, recipientID, recipientName string) (domain.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := domain.PairKey(senderID, recipientID)
	if room, ok := m.rooms[key]; ok {
		return *room, nil
	}

	p1ID, p1Name := senderID, senderName
	p2ID, p2Name := recipientID, recipientName
	if p1ID > p2ID {
		p1ID, p1Name, p2ID, p2Name = p2ID, p2Name, p1ID, p1Name
	}

	room := &domain.ChatRoom{
		ID:               primitive.NewObjectID(),
		PairKey:          key,
		Participant1ID:   p1ID,
		Participant1Name: p1Name,
		Participant2ID:   p2ID,
		Participant2Name: p2Name,
		CreatedAt:        time.Now(),
	}
	m.rooms[key] = room
	return *room, nil
}

func (m *memChatRoomRepo) GetByID(ctx context.Context, roomID primitive.ObjectID) (domain.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.rooms {
		if room.ID == roomID {
			return *room, nil
		}
	}
	return domain.ChatRoom{}, mongo.ErrNoDocuments
}

func (m *memChatRoomRepo) RecordMessage(ctx context.Context, roomID primitive.ObjectID, recipientID, body string, at time.Time) (domain.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.rooms {
		if room.ID != roomID {
			continue
		}
		room.LastMessage = body
		room.LastMessageTime = at
		room.UpdatedAt = at
		if recipientID == room.Participant1ID {
			room.UnreadCount1++
		} else {
			room.UnreadCount2++
		}
		return *room, nil
	}
	return domain.ChatRoom{}, mongo.ErrNoDocuments
}

func (m *memChatRoomRepo) ResetUnread(ctx context.Context, roomID primitive.ObjectID, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.rooms {
		if room.ID != roomID {
			continue
		}
		if profileID == room.Participant1ID {
			room.UnreadCount1 = 0
		} else {
			room.UnreadCount2 = 0
		}
		return nil
	}
	return mongo.ErrNoDocuments
}

// ListByParticipant sorts newest message first, matching the mongo query.
func (m *memChatRoomRepo) ListByParticipant(ctx context.Context, profileID string) ([]domain.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ChatRoom{}
	for _, room := range m.rooms {
		if room.HasParticipant(profileID) {
			out = append(out, *room)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime.After(out[j].LastMessageTime)
	})
	return out, nil
}

func newChatSvc(repo domain.ChatRoomRepository) domain.ChatRoomUC {
	return NewChatRoomUC(repo, nil, 5*time.Second)
}

func sendMessage(t *testing.T, svc domain.ChatRoomUC, from, fromName, to, toName, body string, at time.Time) domain.ChatRoom {
	t.Helper()
	room, err := svc.RecordMessage(context.Background(), domain.ChatMessage{
		SenderID:      from,
		SenderName:    fromName,
		RecipientID:   to,
		RecipientName: toName,
		Body:          body,
		SentAt:        at,
	})
	require.NoError(t, err)
	return room
}

func TestRecordMessageCreatesRoomOnFirstMessage(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	at := time.Now()

	room := sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "hello", at)

	assert.False(t, room.ID.IsZero())
	assert.Equal(t, "hello", room.LastMessage)
	assert.Equal(t, int64(1), room.UnreadFor("alice"))
	assert.Equal(t, int64(0), room.UnreadFor("bob"))
}

func TestRecordMessageReusesRoomForPair(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	at := time.Now()

	first := sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "hello", at)
	// reply goes through the same room regardless of direction
	second := sendMessage(t, svc, "alice", "Alice Seeker", "bob", "Bob Recruiter", "hi there", at.Add(time.Minute))

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rooms, 1)
	assert.Equal(t, "hi there", second.LastMessage)
	assert.Equal(t, int64(1), second.UnreadFor("alice"))
	assert.Equal(t, int64(1), second.UnreadFor("bob"))
}

func TestRecordMessageRejectsSelfConversation(t *testing.T) {
	svc := newChatSvc(newMemChatRoomRepo())

	_, err := svc.RecordMessage(context.Background(), domain.ChatMessage{
		SenderID:    "alice",
		RecipientID: "alice",
		Body:        "note to self",
	})

	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestListRoomsProjectsForViewer(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "about the role", now.Add(-5*time.Minute))
	sendMessage(t, svc, "carol", "Carol HR", "alice", "Alice Seeker", "interview slots", now.Add(-2*time.Hour))

	summaries, err := svc.ListRooms(context.Background(), "alice", "", now)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byOther := map[string]domain.RoomSummary{}
	for _, s := range summaries {
		byOther[s.OtherParticipantID] = s
	}

	bob := byOther["bob"]
	assert.Equal(t, "Bob Recruiter", bob.OtherParticipantName)
	assert.Equal(t, "about the role", bob.LastMessage)
	assert.Equal(t, "5m ago", bob.LastMessageLabel)
	assert.Equal(t, int64(1), bob.UnreadCount)

	carol := byOther["carol"]
	assert.Equal(t, "2h ago", carol.LastMessageLabel)
}

func TestListRoomsNewestMessageFirst(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// oldest conversation sent last, so insertion order differs from message order
	sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "about the role", now.Add(-5*time.Minute))
	sendMessage(t, svc, "dave", "Dave Founder", "alice", "Alice Seeker", "quick question", now.Add(-3*24*time.Hour))
	sendMessage(t, svc, "carol", "Carol HR", "alice", "Alice Seeker", "interview slots", now.Add(-2*time.Hour))

	summaries, err := svc.ListRooms(context.Background(), "alice", "", now)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "bob", summaries[0].OtherParticipantID)
	assert.Equal(t, "carol", summaries[1].OtherParticipantID)
	assert.Equal(t, "dave", summaries[2].OtherParticipantID)
}

func TestListRoomsFiltersByQuery(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	now := time.Now()

	sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "about the role", now)
	sendMessage(t, svc, "carol", "Carol HR", "alice", "Alice Seeker", "interview slots", now)

	summaries, err := svc.ListRooms(context.Background(), "alice", "recruiter", now)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "bob", summaries[0].OtherParticipantID)

	// query matches last message too
	summaries, err = svc.ListRooms(context.Background(), "alice", "interview", now)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "carol", summaries[0].OtherParticipantID)
}

func TestListRoomsQueryDoesNotMutateRooms(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	now := time.Now()

	room := sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "about the role", now)

	_, err := svc.ListRooms(context.Background(), "alice", "zzz", now)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, room, stored)
}

func TestMarkRoomRead(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)
	now := time.Now()

	room := sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "hello", now)
	require.Equal(t, int64(1), room.UnreadFor("alice"))

	require.NoError(t, svc.MarkRoomRead(context.Background(), room.ID, "alice"))

	stored, err := repo.GetByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.UnreadFor("alice"))
}

func TestMarkRoomReadRequiresParticipant(t *testing.T) {
	repo := newMemChatRoomRepo()
	svc := newChatSvc(repo)

	room := sendMessage(t, svc, "bob", "Bob Recruiter", "alice", "Alice Seeker", "hello", time.Now())

	err := svc.MarkRoomRead(context.Background(), room.ID, "mallory")
	assert.ErrorIs(t, err, ErrNotParticipant)
}
