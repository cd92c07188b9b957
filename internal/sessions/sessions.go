// Package sessions holds in-progress game state between a player's opening
// action and the terminal outcome. At most one live session may exist per
// (user, game kind) pair.
//
// Expiry is lazy: each session carries an absolute deadline checked on every
// access, with a periodic sweep for the in-memory backend. A session that
// expires mid-hand is simply evicted; its already-debited stake is abandoned
// with no compensating ledger entry.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrSessionActive = errors.New("session already active")
	ErrNoSession     = errors.New("no active session")
)

type Kind string

const (
	KindBlackjack Kind = "blackjack"
	KindPoker     Kind = "poker"
	KindApple     Kind = "apple"
)

// Session is the stored unit. State is the engine's JSON-encoded game state
// so the same payload works for both backends.
type Session struct {
	UserID    uint64          `json:"userId"`
	Kind      Kind            `json:"kind"`
	Bet       int64           `json:"bet"`
	State     json.RawMessage `json:"state"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type Store interface {
	// Create registers a new session; ErrSessionActive if one is live.
	Create(ctx context.Context, sess *Session) error
	// Get returns the live session or ErrNoSession.
	Get(ctx context.Context, userID uint64, kind Kind) (*Session, error)
	// Touch stores updated engine state and rearms the TTL.
	Touch(ctx context.Context, userID uint64, kind Kind, state json.RawMessage) error
	// Destroy removes the session. Removing an absent session is not an error.
	Destroy(ctx context.Context, userID uint64, kind Kind) error
}
