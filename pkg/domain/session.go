package domain

// ScreenID identifies a single screen of the menu tree.
type ScreenID string

// Session is the per-dialog state owned by the session store.
// The gateway assigns the session id; this system never generates one.
type Session struct {
	// SessionID is the opaque correlation key assigned by the gateway.
	SessionID string `json:"session_id"`

	// CurrentScreen is the screen the subscriber is parked on.
	CurrentScreen ScreenID `json:"current_screen"`

	// Captured accumulates values selected across screens,
	// keyed by each screen's capture key (e.g. "feeling" -> "Fine").
	Captured map[string]string `json:"captured"`
}

// NewSession creates a fresh session pinned to the given start screen.
func NewSession(sessionID string, start ScreenID) *Session {
	return &Session{
		SessionID:     sessionID,
		CurrentScreen: start,
		Captured:      make(map[string]string),
	}
}

// Snapshot returns a copy with an isolated Captured map, so stores and
// callers can never observe each other's mutations through a shared pointer.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.Captured = make(map[string]string, len(s.Captured))
	for k, v := range s.Captured {
		next.Captured[k] = v
	}
	return &next
}
