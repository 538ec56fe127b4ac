package transport

import (
	"context"
	"time"
)

// Reason explains why a session was expired.
type Reason string

const (
	ReasonNoRefreshToken Reason = "no_refresh_token"
	ReasonRefreshFailed  Reason = "refresh_failed"
)

// SessionObserver is notified after the credential store was cleared because
// the session could not be recovered.
type SessionObserver interface {
	OnSessionExpired(ctx context.Context, reason Reason)
}

// ObserverFunc adapts a function to SessionObserver.
type ObserverFunc func(ctx context.Context, reason Reason)

func (f ObserverFunc) OnSessionExpired(ctx context.Context, reason Reason) {
	f(ctx, reason)
}

// Refresh outcomes reported to a Recorder.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_refresh_token"
)

// Recorder receives refresh protocol events, see the metrics package.
type Recorder interface {
	RefreshCompleted(outcome string, duration time.Duration)
	SessionExpired(reason Reason)
}

type nopRecorder struct{}

func (nopRecorder) RefreshCompleted(string, time.Duration) {}
func (nopRecorder) SessionExpired(Reason)                  {}
