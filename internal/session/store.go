package session

import "context"

// Store persists session records between turns. Load returns nil for an
// unknown address; that is a new conversation, not an error.
type Store interface {
	Load(ctx context.Context, addr string) (*Session, error)
	Save(ctx context.Context, sess Session) error
	Delete(ctx context.Context, addr string) error
}
