package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRoom() ChatRoom {
	return ChatRoom{
		PairKey:          PairKey("alice", "bob"),
		Participant1ID:   "alice",
		Participant1Name: "Alice Seeker",
		Participant2ID:   "bob",
		Participant2Name: "Bob Recruiter",
		LastMessage:      "Looking forward to the interview",
		LastMessageTime:  time.Now(),
		UnreadCount1:     2,
		UnreadCount2:     0,
	}
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("alice", "bob"), PairKey("bob", "alice"))
	assert.Equal(t, "alice|bob", PairKey("bob", "alice"))
	assert.NotEqual(t, PairKey("alice", "bob"), PairKey("alice", "carol"))
}

func TestOtherParticipant(t *testing.T) {
	room := sampleRoom()

	id, name := room.OtherParticipant("alice")
	assert.Equal(t, "bob", id)
	assert.Equal(t, "Bob Recruiter", name)

	id, name = room.OtherParticipant("bob")
	assert.Equal(t, "alice", id)
	assert.Equal(t, "Alice Seeker", name)
}

func TestUnreadFor(t *testing.T) {
	room := sampleRoom()
	assert.Equal(t, int64(2), room.UnreadFor("alice"))
	assert.Equal(t, int64(0), room.UnreadFor("bob"))
}

func TestHasParticipant(t *testing.T) {
	room := sampleRoom()
	assert.True(t, room.HasParticipant("alice"))
	assert.True(t, room.HasParticipant("bob"))
	assert.False(t, room.HasParticipant("carol"))
}

func TestMatchesQuery(t *testing.T) {
	room := sampleRoom()

	// other participant name, case insensitive
	assert.True(t, room.MatchesQuery("alice", "recruiter"))
	assert.True(t, room.MatchesQuery("alice", "BOB"))
	// viewer's own name does not match
	assert.False(t, room.MatchesQuery("alice", "seeker"))
	// last message body
	assert.True(t, room.MatchesQuery("alice", "INTERVIEW"))
	// empty query matches everything
	assert.True(t, room.MatchesQuery("alice", ""))
	assert.False(t, room.MatchesQuery("alice", "zzz"))
}

func TestMatchesQueryDoesNotMutate(t *testing.T) {
	room := sampleRoom()
	before := room
	room.MatchesQuery("alice", "interview")
	assert.Equal(t, before, room)
}
