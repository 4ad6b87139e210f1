package domain

// DialogRequest is one inbound gateway request, already decoded and
// validated at the transport boundary. It is transient: the store never
// owns it.
type DialogRequest struct {
	// SubscriberID is a free-form display label for the subscriber.
	SubscriberID string

	// Msisdn is the subscriber's phone number (digits only).
	Msisdn string

	// Input is the raw dial string (new dialog) or the latest single
	// keypress (continuation).
	Input string

	// NewDialog is true when the gateway opens a fresh dialog and Input
	// carries the full dial string.
	NewDialog bool

	// SessionID correlates all requests within one dialog.
	SessionID string
}

// DialogResponse is the engine's answer to one request.
type DialogResponse struct {
	SubscriberID string
	Msisdn       string

	// Message is the next prompt or the final result text.
	Message string

	// Continue is true while the gateway should prompt for further input.
	// It is false exactly when the session has just been removed.
	Continue bool
}
