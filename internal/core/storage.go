package core

import "context"

// SessionRepository maps a session id to its bounded turn history.
// Implementations must serialize access per session while letting
// independent sessions proceed concurrently.
type SessionRepository interface {
	Append(ctx context.Context, sessionID string, turn Turn) error
	LastTurn(ctx context.Context, sessionID string) (*Turn, error)
}
