package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side record of an authenticated administrator.
// The client only ever holds the opaque ID.
type Session struct {
	ID        string    `json:"id"`
	AdminID   int       `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Store persists sessions. Implementations live in storage/session.
type Store interface {
	Save(ctx context.Context, sess Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
