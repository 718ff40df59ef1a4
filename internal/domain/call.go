package domain

import (
	"context"
	"time"
)

// CallState is the lifecycle of the single incoming-call slot.
type CallState string

const (
	CallStateNone     CallState = "NONE"
	CallStatePending  CallState = "PENDING"
	CallStateAccepted CallState = "ACCEPTED"
	CallStateRejected CallState = "REJECTED"
)

// CallInvitation is a transient offer awaiting accept/reject. At most one
// invitation may be pending per process.
type CallInvitation struct {
	CallID      string    `json:"callId"`
	CallerID    string    `json:"callerId"`
	CallerName  string    `json:"callerName"`
	CalleeID    string    `json:"calleeId"`
	IsVideoCall bool      `json:"isVideoCall"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CallEvent is pushed to subscribers on every slot transition.
type CallEvent struct {
	State      CallState      `json:"state"`
	Invitation CallInvitation `json:"invitation"`
}

type CallUC interface {
	Offer(ctx context.Context, invitation CallInvitation) (CallInvitation, error)
	Accept(ctx context.Context, callID, profileID string) (CallInvitation, error)
	Reject(ctx context.Context, callID, profileID string) (CallInvitation, error)
	Current(ctx context.Context) (CallInvitation, CallState)
	Subscribe() (<-chan CallEvent, func())
}
