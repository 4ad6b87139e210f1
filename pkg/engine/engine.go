// Package engine implements the dialog state machine: it consumes the
// subscriber's pending inputs against the menu definition and the
// session, and decides the next prompt, the continuation flag, and
// whether the session ends.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yawmintah/ussdflow/internal/logging"
	"github.com/yawmintah/ussdflow/pkg/dialstring"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/menu"
	"github.com/yawmintah/ussdflow/pkg/session"
)

// Messages sent when a dialog cannot proceed. These terminate the
// session; screen-level invalid selections re-prompt instead.
const (
	// RejectedMessage answers a dial string that fails to parse or
	// addresses the wrong service.
	RejectedMessage = "Invalid service code. Please check and dial again."

	// ErrorMessage answers an internal inconsistency. Reaching it means
	// menu validation was bypassed; the session ends, the process lives.
	ErrorMessage = "An error occurred. Please try again later."
)

// Engine drives dialogs. It is stateless between calls: everything it
// knows about a dialog lives in the session store.
type Engine struct {
	menu     *menu.Menu
	sessions *session.Manager
	parser   *dialstring.Parser
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine over a validated menu, a session manager and a
// dial-string parser.
func New(m *menu.Menu, sessions *session.Manager, parser *dialstring.Parser, opts ...Option) *Engine {
	e := &Engine{
		menu:     m,
		sessions: sessions,
		parser:   parser,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one gateway request and returns the next screen of
// text plus the continuation flag. A non-nil error means the store
// failed, not that the subscriber did anything wrong: subscriber-level
// failures are answered in the response itself.
func (e *Engine) Handle(ctx context.Context, req domain.DialogRequest) (domain.DialogResponse, error) {
	resp := domain.DialogResponse{
		SubscriberID: req.SubscriberID,
		Msisdn:       req.Msisdn,
	}

	inputs, parseErr := e.parser.Parse(req.Input, req.NewDialog)
	if parseErr != nil {
		// Hard parse failure: the dialog ends immediately and no session
		// may be retained for the id.
		if err := e.sessions.Delete(ctx, req.SessionID); err != nil {
			return domain.DialogResponse{}, fmt.Errorf("failed to drop session after rejected dial string: %w", err)
		}
		e.logger.Warn("rejected dial string",
			"session_id", req.SessionID,
			"err", parseErr,
		)
		e.emitDialogEnd(ctx, req.SessionID, domain.OutcomeRejected)
		resp.Message = RejectedMessage
		resp.Continue = false
		return resp, nil
	}

	err := e.sessions.WithLock(ctx, req.SessionID, func(ctx context.Context) error {
		store := e.sessions.Store()

		sess, err := store.Load(ctx, req.SessionID)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			sess = domain.NewSession(req.SessionID, e.menu.Start())
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		}

		if req.NewDialog {
			// A fresh dial string restarts the dialog even on a live id.
			sess = domain.NewSession(req.SessionID, e.menu.Start())
			e.emitScreenEnter(ctx, req.SessionID, sess.CurrentScreen, "")
		}

		out := e.advance(ctx, &req, sess, inputs)
		resp.Message = out.message
		resp.Continue = !out.terminate

		if out.terminate {
			e.emitDialogEnd(ctx, req.SessionID, out.endOutcome)
			if err := store.Delete(ctx, req.SessionID); err != nil {
				return fmt.Errorf("failed to delete terminated session: %w", err)
			}
			return nil
		}
		if err := store.Save(ctx, req.SessionID, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.DialogResponse{}, err
	}
	return resp, nil
}

// result is the outcome of consuming the pending inputs.
type result struct {
	message    string
	terminate  bool
	endOutcome string
}

// advance applies the transition rule to each pending input in order,
// stopping at the first input that does not land on a continuing screen.
func (e *Engine) advance(ctx context.Context, req *domain.DialogRequest, sess *domain.Session, inputs []string) result {
	for _, code := range inputs {
		scr, ok := e.menu.Screen(sess.CurrentScreen)
		if !ok {
			return e.failScreen(sess)
		}

		opt, ok := scr.Option(code)
		if !ok {
			// Inputs received after an invalid one are discarded, not
			// buffered; the subscriber re-answers the same screen.
			e.emitInvalidInput(ctx, req.SessionID, sess.CurrentScreen, code)
			return result{
				message: e.menu.InvalidNotice() + "\n" + menu.Render(scr.Prompt, e.vars(req, sess)),
			}
		}

		if scr.CaptureKey != "" {
			sess.Captured[scr.CaptureKey] = opt.Value
		}

		if opt.Terminal() {
			// Remaining inputs, if any, are dropped: the dialog is over.
			return result{
				message:    menu.Render(opt.Outcome, e.vars(req, sess)),
				terminate:  true,
				endOutcome: domain.OutcomeCompleted,
			}
		}

		sess.CurrentScreen = opt.Next
		e.emitScreenEnter(ctx, req.SessionID, sess.CurrentScreen, code)
	}

	// Inputs exhausted without a terminal outcome: park on the screen
	// last reached and prompt for more.
	scr, ok := e.menu.Screen(sess.CurrentScreen)
	if !ok {
		return e.failScreen(sess)
	}

	msg := menu.Render(scr.Prompt, e.vars(req, sess))
	if req.NewDialog && len(inputs) == 0 && e.menu.Greeting() != "" {
		msg = menu.Render(e.menu.Greeting(), e.vars(req, sess)) + "\n" + msg
	}
	return result{message: msg}
}

// failScreen handles a session parked on a screen the menu does not
// define. Menu validation makes this unreachable; the fallback ends the
// one session instead of crashing the handling of others.
func (e *Engine) failScreen(sess *domain.Session) result {
	e.logger.Error("session parked on undefined screen",
		"session_id", sess.SessionID,
		"screen", string(sess.CurrentScreen),
	)
	return result{
		message:    ErrorMessage,
		terminate:  true,
		endOutcome: domain.OutcomeError,
	}
}

// vars assembles the template values visible to prompts and outcomes:
// subscriber fields plus everything captured so far.
func (e *Engine) vars(req *domain.DialogRequest, sess *domain.Session) map[string]string {
	vars := make(map[string]string, len(sess.Captured)+2)
	for k, v := range sess.Captured {
		vars[k] = v
	}
	vars["subscriber"] = req.SubscriberID
	vars["msisdn"] = req.Msisdn
	return vars
}

func (e *Engine) emitScreenEnter(ctx context.Context, sessionID string, screen domain.ScreenID, input string) {
	if e.hooks.OnScreenEnter == nil {
		return
	}
	e.hooks.OnScreenEnter(ctx, &domain.ScreenEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventScreenEnter,
			SessionID: sessionID,
		},
		Screen: screen,
		Input:  input,
	})
}

func (e *Engine) emitInvalidInput(ctx context.Context, sessionID string, screen domain.ScreenID, input string) {
	if e.hooks.OnInvalidInput == nil {
		return
	}
	e.hooks.OnInvalidInput(ctx, &domain.ScreenEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventInvalidInput,
			SessionID: sessionID,
		},
		Screen: screen,
		Input:  input,
	})
}

func (e *Engine) emitDialogEnd(ctx context.Context, sessionID string, outcome string) {
	if e.hooks.OnDialogEnd == nil {
		return
	}
	e.hooks.OnDialogEnd(ctx, &domain.DialogEndEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventDialogEnd,
			SessionID: sessionID,
		},
		Outcome: outcome,
	})
}
