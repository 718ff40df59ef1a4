package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/realtime"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrCallInProgress = errors.New("another call invitation is already pending")
	ErrNoPendingCall  = errors.New("no pending call invitation")
	ErrCallMismatch   = errors.New("call id does not match the pending invitation")
	ErrNotCallee      = errors.New("only the callee can answer the invitation")
	ErrInvalidCall    = errors.New("caller and callee must be distinct and non-empty")
)

const subscriberBuffer = 8

// callUC is the single-slot incoming-call signal. One writer mutates the
// slot; any number of readers snapshot it or subscribe to transitions.
// A second offer while one is pending is refused (busy policy).
type callUC struct {
	mu          sync.RWMutex
	state       domain.CallState
	invitation  domain.CallInvitation
	subscribers map[chan domain.CallEvent]struct{}

	hub         *realtime.Hub
	notifier    domain.NotificationUC
	ringTimeout time.Duration
	ringTimer   *time.Timer
}

func NewCallUC(hub *realtime.Hub, notifier domain.NotificationUC, ringTimeout time.Duration) domain.CallUC {
	return &callUC{
		state:       domain.CallStateNone,
		subscribers: map[chan domain.CallEvent]struct{}{},
		hub:         hub,
		notifier:    notifier,
		ringTimeout: ringTimeout,
	}
}

func (cu *callUC) Offer(ctx context.Context, invitation domain.CallInvitation) (domain.CallInvitation, error) {
	if invitation.CallerID == "" || invitation.CalleeID == "" || invitation.CallerID == invitation.CalleeID {
		return domain.CallInvitation{}, ErrInvalidCall
	}

	cu.mu.Lock()
	if cu.state == domain.CallStatePending {
		cu.mu.Unlock()
		return domain.CallInvitation{}, ErrCallInProgress
	}

	if invitation.CallID == "" {
		invitation.CallID = uuid.NewString()
	}
	invitation.CreatedAt = time.Now()

	cu.state = domain.CallStatePending
	cu.invitation = invitation

	if cu.ringTimeout > 0 {
		callID := invitation.CallID
		cu.ringTimer = time.AfterFunc(cu.ringTimeout, func() {
			cu.expire(callID)
		})
	}
	cu.mu.Unlock()

	cu.notify(domain.CallEvent{State: domain.CallStatePending, Invitation: invitation})
	if cu.hub != nil {
		cu.hub.Push(invitation.CalleeID, realtime.Event{
			Name: realtime.EventCallOffer,
			Data: invitation,
		})
	}

	return invitation, nil
}

func (cu *callUC) Accept(ctx context.Context, callID, profileID string) (domain.CallInvitation, error) {
	return cu.answer(callID, profileID, domain.CallStateAccepted)
}

func (cu *callUC) Reject(ctx context.Context, callID, profileID string) (domain.CallInvitation, error) {
	return cu.answer(callID, profileID, domain.CallStateRejected)
}

func (cu *callUC) answer(callID, profileID string, state domain.CallState) (domain.CallInvitation, error) {
	cu.mu.Lock()
	if cu.state != domain.CallStatePending {
		cu.mu.Unlock()
		return domain.CallInvitation{}, ErrNoPendingCall
	}
	if cu.invitation.CallID != callID {
		cu.mu.Unlock()
		return domain.CallInvitation{}, ErrCallMismatch
	}
	if cu.invitation.CalleeID != profileID {
		cu.mu.Unlock()
		return domain.CallInvitation{}, ErrNotCallee
	}

	invitation := cu.invitation
	cu.clearLocked()
	cu.mu.Unlock()

	cu.notify(domain.CallEvent{State: state, Invitation: invitation})
	// slot is free again once the answer is broadcast
	cu.notify(domain.CallEvent{State: domain.CallStateNone, Invitation: invitation})

	if cu.hub != nil {
		cu.hub.Push(invitation.CallerID, realtime.Event{
			Name: realtime.EventCallAnswer,
			Data: domain.CallEvent{State: state, Invitation: invitation},
		})
	}

	return invitation, nil
}

func (cu *callUC) Current(ctx context.Context) (domain.CallInvitation, domain.CallState) {
	cu.mu.RLock()
	defer cu.mu.RUnlock()
	return cu.invitation, cu.state
}

func (cu *callUC) Subscribe() (<-chan domain.CallEvent, func()) {
	ch := make(chan domain.CallEvent, subscriberBuffer)

	cu.mu.Lock()
	cu.subscribers[ch] = struct{}{}
	cu.mu.Unlock()

	cancel := func() {
		cu.mu.Lock()
		if _, ok := cu.subscribers[ch]; ok {
			delete(cu.subscribers, ch)
			close(ch)
		}
		cu.mu.Unlock()
	}

	return ch, cancel
}

// expire drops a pending invitation nobody answered in time and records a
// missed-call notification for the callee.
func (cu *callUC) expire(callID string) {
	cu.mu.Lock()
	if cu.state != domain.CallStatePending || cu.invitation.CallID != callID {
		cu.mu.Unlock()
		return
	}
	invitation := cu.invitation
	cu.clearLocked()
	cu.mu.Unlock()

	cu.notify(domain.CallEvent{State: domain.CallStateNone, Invitation: invitation})

	if cu.hub != nil {
		cu.hub.Push(invitation.CalleeID, realtime.Event{
			Name: realtime.EventCallCancel,
			Data: invitation,
		})
		cu.hub.Push(invitation.CallerID, realtime.Event{
			Name: realtime.EventCallCancel,
			Data: invitation,
		})
	}

	if cu.notifier != nil {
		_, err := cu.notifier.Create(context.Background(), domain.Notification{
			RecipientProfileID: invitation.CalleeID,
			Title:              "Missed call",
			Message:            "You missed a call from " + invitation.CallerName,
			Type:               domain.NotificationMessage,
		})
		if err != nil {
			logrus.Error("unable to record missed call notification: ", err)
		}
	}
}

// clearLocked resets the slot. Caller holds the write lock.
func (cu *callUC) clearLocked() {
	cu.state = domain.CallStateNone
	cu.invitation = domain.CallInvitation{}
	if cu.ringTimer != nil {
		cu.ringTimer.Stop()
		cu.ringTimer = nil
	}
}

func (cu *callUC) notify(event domain.CallEvent) {
	cu.mu.RLock()
	defer cu.mu.RUnlock()
	for ch := range cu.subscribers {
		select {
		case ch <- event:
		default:
			// subscriber not draining, skip
		}
	}
}
