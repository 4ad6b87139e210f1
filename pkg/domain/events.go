package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventScreenEnter  EventType = "screen_enter"
	EventInvalidInput EventType = "invalid_input"
	EventDialogEnd    EventType = "dialog_end"
)

// End outcomes reported by DialogEndEvent.
const (
	OutcomeCompleted = "completed" // terminal outcome reached
	OutcomeRejected  = "rejected"  // dial string failed to parse
	OutcomeError     = "error"     // internal inconsistency, session abandoned
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// ScreenEvent reports screen entry or a rejected keypress on a screen.
type ScreenEvent struct {
	EventBase
	Screen ScreenID `json:"screen"`
	Input  string   `json:"input,omitempty"`
}

// DialogEndEvent reports that a session was removed and why.
type DialogEndEvent struct {
	EventBase
	Outcome string `json:"outcome"`
}

// LifecycleHooks defines callbacks for engine observability.
// The engine emits events; the host decides sink and format.
type LifecycleHooks struct {
	OnScreenEnter  func(context.Context, *ScreenEvent)
	OnInvalidInput func(context.Context, *ScreenEvent)
	OnDialogEnd    func(context.Context, *DialogEndEvent)
}
