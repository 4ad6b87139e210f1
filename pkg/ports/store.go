package ports

import (
	"context"

	"github.com/yawmintah/ussdflow/pkg/domain"
)

// SessionStore defines the interface for persisting dialog sessions.
// Sessions are ephemeral; implementations may lose them on restart.
type SessionStore interface {
	// Save replaces the stored state for a session ID. The whole session
	// is written atomically, never field by field.
	Save(ctx context.Context, sessionID string, sess *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an absent ID is not an error;
	// a deleted ID, if reused, is treated as brand-new.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
