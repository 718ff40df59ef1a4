package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event names delivered to connected app sessions.
const (
	EventNotification = "notification"
	EventChatMessage  = "chat_message"
	EventCallOffer    = "call_offer"
	EventCallCancel   = "call_cancel"
	EventCallAnswer   = "call_answer"
)

// Event is the JSON envelope pushed over a session socket.
type Event struct {
	Name string      `json:"name"`
	Data interface{} `json:"data"`
}

const sessionSendBuffer = 16

// Session is one connected app client for a profile.
type Session struct {
	ProfileID string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Hub tracks live sessions per profile and fans events out to them.
// Delivery is best effort: a slow or closed session is dropped.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: map[string]map[*Session]struct{}{},
	}
}

// Register attaches a connection for a profile and starts its writer.
func (h *Hub) Register(profileID string, conn *websocket.Conn) *Session {
	session := &Session{
		ProfileID: profileID,
		conn:      conn,
		send:      make(chan []byte, sessionSendBuffer),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	if h.sessions[profileID] == nil {
		h.sessions[profileID] = map[*Session]struct{}{}
	}
	h.sessions[profileID][session] = struct{}{}
	h.mu.Unlock()

	go session.writeLoop()

	return session
}

func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	if set, ok := h.sessions[session.ProfileID]; ok {
		delete(set, session)
		if len(set) == 0 {
			delete(h.sessions, session.ProfileID)
		}
	}
	h.mu.Unlock()

	session.closeOnce.Do(func() {
		close(session.done)
		session.conn.Close()
	})
}

// Push delivers an event to every live session of the profile.
func (h *Hub) Push(profileID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.Error("unable to marshal realtime event", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions[profileID]))
	for session := range h.sessions[profileID] {
		targets = append(targets, session)
	}
	h.mu.RUnlock()

	for _, session := range targets {
		select {
		case session.send <- payload:
		case <-session.done:
		default:
			// backed up session, drop it
			h.Unregister(session)
		}
	}
}

// SessionCount reports live sessions for a profile.
func (h *Hub) SessionCount(profileID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[profileID])
}

func (s *Session) writeLoop() {
	for {
		select {
		case payload := <-s.send:
			err := s.conn.WriteMessage(websocket.TextMessage, payload)
			if err != nil {
				logrus.Debug("session write failed:", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

// ReadLoop drains the socket until the client goes away, then unregisters.
// Inbound frames are ignored; the socket is push only.
func (s *Session) ReadLoop(h *Hub) {
	defer h.Unregister(s)

	for {
		_, _, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
	}
}
