package database

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ReadyState 對應驅動的連線狀態列舉
type ReadyState int

const (
	Disconnected  ReadyState = 0
	Connected     ReadyState = 1
	Connecting    ReadyState = 2
	Disconnecting ReadyState = 3
)

func (s ReadyState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// Conn 是注入到 router 的連線 handle
type Conn interface {
	ReadyState() ReadyState
	Host() string
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// stateTracker records readiness transitions and logs them. Once the
// connection has been closed by its owner, driver events no longer move it.
type stateTracker struct {
	mu     sync.Mutex
	state  ReadyState
	closed bool
	log    zerolog.Logger
}

func newStateTracker(log zerolog.Logger) *stateTracker {
	return &stateTracker{state: Disconnected, log: log}
}

func (t *stateTracker) get() ReadyState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// set moves to s and reports whether the state actually changed.
func (t *stateTracker) set(s ReadyState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.state == s {
		return false
	}
	t.state = s
	return true
}

// connected is called by driver observers after a successful round trip.
func (t *stateTracker) connected() {
	if t.set(Connected) {
		t.log.Info().Msg("database connected")
	}
}

// failed is called by driver observers when a round trip fails.
func (t *stateTracker) failed(err error) {
	t.log.Error().Err(err).Msg("database connection error")
	if t.set(Disconnected) {
		t.log.Warn().Msg("database disconnected")
	}
}

// beginClose marks the start of an owner-initiated close. It returns false
// when the connection is already closed.
func (t *stateTracker) beginClose() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	t.state = Disconnecting
	return true
}

func (t *stateTracker) endClose() {
	t.mu.Lock()
	t.state = Disconnected
	t.closed = true
	t.mu.Unlock()
	t.log.Info().Msg("database connection closed")
}
