package engine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yawmintah/ussdflow/pkg/dialstring"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/engine"
	"github.com/yawmintah/ussdflow/pkg/menu"
	"github.com/yawmintah/ussdflow/pkg/session"

	memorystore "github.com/yawmintah/ussdflow/pkg/adapters/memory"
)

const (
	screenOnePrompt = "How are you feeling?\n1. Fine\n2. Frisky\n3. Not well"
	screenTwoFine   = "Why are you feeling fine?\n1. Money\n2. Relationships\n3. Health"
)

func newTestEngine(t *testing.T, opts ...engine.Option) (*engine.Engine, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(memorystore.NewStore())
	eng := engine.New(menu.Feelings(), mgr, dialstring.NewParser("920", "1802"), opts...)
	return eng, mgr
}

func newDialog(sessionID, dial string) domain.DialogRequest {
	return domain.DialogRequest{
		SubscriberID: "NOC1802",
		Msisdn:       "0244123456",
		Input:        dial,
		NewDialog:    true,
		SessionID:    sessionID,
	}
}

func continuation(sessionID, keypress string) domain.DialogRequest {
	return domain.DialogRequest{
		SubscriberID: "NOC1802",
		Msisdn:       "0244123456",
		Input:        keypress,
		NewDialog:    false,
		SessionID:    sessionID,
	}
}

func TestHandle_FullDialStringToCompletion(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	resp, err := eng.Handle(ctx, newDialog("s-a", "*920*1802*1*2#"))
	require.NoError(t, err)

	assert.Equal(t, "You are feeling fine because of relationships.", resp.Message)
	assert.False(t, resp.Continue)
	assert.Equal(t, "NOC1802", resp.SubscriberID)
	assert.Equal(t, "0244123456", resp.Msisdn)

	// The session must not outlive its terminal response.
	_, err = mgr.Load(ctx, "s-a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestHandle_NewDialogNoSelections(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	resp, err := eng.Handle(ctx, newDialog("s-b", "*920*1802#"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to NOC1802's Service.\n"+screenOnePrompt, resp.Message)
	assert.True(t, resp.Continue)

	sess, err := mgr.Load(ctx, "s-b")
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenID("feeling"), sess.CurrentScreen)
	assert.Empty(t, sess.Captured)
}

func TestHandle_WrongShortCode(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	resp, err := eng.Handle(ctx, newDialog("s-c", "*111*1802*1#"))
	require.NoError(t, err)

	assert.Equal(t, engine.RejectedMessage, resp.Message)
	assert.False(t, resp.Continue)

	_, err = mgr.Load(ctx, "s-c")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestHandle_InvalidKeypressReprompts(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("s-d", "*920*1802#"))
	require.NoError(t, err)

	resp, err := eng.Handle(ctx, continuation("s-d", "9"))
	require.NoError(t, err)

	assert.Equal(t, menu.DefaultInvalidNotice+"\n"+screenOnePrompt, resp.Message)
	assert.True(t, resp.Continue)

	// Session state unchanged: still on screen one, nothing captured.
	sess, err := mgr.Load(ctx, "s-d")
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenID("feeling"), sess.CurrentScreen)
	assert.Empty(t, sess.Captured)
}

func TestHandle_ValidKeypressAdvances(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("s-step", "*920*1802#"))
	require.NoError(t, err)

	resp, err := eng.Handle(ctx, continuation("s-step", "1"))
	require.NoError(t, err)

	assert.Equal(t, screenTwoFine, resp.Message)
	assert.True(t, resp.Continue)

	sess, err := mgr.Load(ctx, "s-step")
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenID("reason"), sess.CurrentScreen)
	assert.Equal(t, "Fine", sess.Captured["feeling"])
}

func TestHandle_SecondScreenCompletes(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("s-done", "*920*1802*3#"))
	require.NoError(t, err)

	resp, err := eng.Handle(ctx, continuation("s-done", "3"))
	require.NoError(t, err)

	assert.Equal(t, "You are feeling not well because of health.", resp.Message)
	assert.False(t, resp.Continue)

	_, err = mgr.Load(ctx, "s-done")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestHandle_BatchStopsAtInvalidInput(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	// "1" advances to the reason screen; "9" is invalid there; "2" after
	// the invalid one must be discarded, not buffered.
	resp, err := eng.Handle(ctx, newDialog("s-batch", "*920*1802*1*9*2#"))
	require.NoError(t, err)

	assert.Equal(t, menu.DefaultInvalidNotice+"\n"+screenTwoFine, resp.Message)
	assert.True(t, resp.Continue)

	sess, err := mgr.Load(ctx, "s-batch")
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenID("reason"), sess.CurrentScreen)
	assert.Equal(t, "Fine", sess.Captured["feeling"])
	assert.NotContains(t, sess.Captured, "reason")
}

func TestHandle_BatchStopsAtTerminalOutcome(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	// The trailing "3" arrives after the terminal outcome and is ignored.
	resp, err := eng.Handle(ctx, newDialog("s-extra", "*920*1802*1*2*3#"))
	require.NoError(t, err)

	assert.Equal(t, "You are feeling fine because of relationships.", resp.Message)
	assert.False(t, resp.Continue)
}

func TestHandle_UnseenContinuationStartsFresh(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	// A continuation for an id the store has never seen is evaluated
	// against the initial screen.
	resp, err := eng.Handle(ctx, continuation("never-seen", "2"))
	require.NoError(t, err)

	assert.Equal(t, "Why are you feeling frisky?\n1. Money\n2. Relationships\n3. Health", resp.Message)
	assert.True(t, resp.Continue)

	sess, err := mgr.Load(ctx, "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "Frisky", sess.Captured["feeling"])
}

func TestHandle_DeletedIDIsBrandNew(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("reused", "*920*1802*1*1#"))
	require.NoError(t, err)

	// Reusing the id after terminal deletion behaves as if unseen: no
	// residual captured state leaks into the new dialog.
	resp, err := eng.Handle(ctx, continuation("reused", "2"))
	require.NoError(t, err)
	assert.Equal(t, "Why are you feeling frisky?\n1. Money\n2. Relationships\n3. Health", resp.Message)
	assert.True(t, resp.Continue)
}

func TestHandle_NewDialogRestartsLiveSession(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("restart", "*920*1802*1#"))
	require.NoError(t, err)

	// A second full dial string on the same live id starts over.
	resp, err := eng.Handle(ctx, newDialog("restart", "*920*1802#"))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to NOC1802's Service.\n"+screenOnePrompt, resp.Message)

	sess, err := mgr.Load(ctx, "restart")
	require.NoError(t, err)
	assert.Empty(t, sess.Captured)
}

func TestHandle_UndefinedScreenTerminatesSessionOnly(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	// Force a session onto a screen the menu does not define.
	broken := domain.NewSession("s-broken", "ghost")
	require.NoError(t, mgr.Save(ctx, "s-broken", broken))

	resp, err := eng.Handle(ctx, continuation("s-broken", "1"))
	require.NoError(t, err)

	assert.Equal(t, engine.ErrorMessage, resp.Message)
	assert.False(t, resp.Continue)

	_, err = mgr.Load(ctx, "s-broken")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Other sessions are unaffected.
	resp, err = eng.Handle(ctx, newDialog("s-healthy", "*920*1802#"))
	require.NoError(t, err)
	assert.True(t, resp.Continue)
}

func TestHandle_ConcurrentSessionsAreIsolated(t *testing.T) {
	eng, mgr := newTestEngine(t)
	ctx := context.Background()

	feelings := map[string]string{"1": "Fine", "2": "Frisky", "3": "Not well"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("%d", n%3+1)
			sid := fmt.Sprintf("conc-%d", n)

			_, err := eng.Handle(ctx, newDialog(sid, "*920*1802#"))
			assert.NoError(t, err)

			resp, err := eng.Handle(ctx, continuation(sid, key))
			assert.NoError(t, err)
			assert.True(t, resp.Continue)
		}(i)
	}
	wg.Wait()

	// Each session captured only its own selection.
	for i := 0; i < 30; i++ {
		sid := fmt.Sprintf("conc-%d", i)
		sess, err := mgr.Load(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, feelings[fmt.Sprintf("%d", i%3+1)], sess.Captured["feeling"], "session %s", sid)
	}
}

func TestHandle_EmitsLifecycleEvents(t *testing.T) {
	var mu sync.Mutex
	var entered []domain.ScreenID
	var invalid []string
	var ends []string

	hooks := domain.LifecycleHooks{
		OnScreenEnter: func(_ context.Context, e *domain.ScreenEvent) {
			mu.Lock()
			entered = append(entered, e.Screen)
			mu.Unlock()
		},
		OnInvalidInput: func(_ context.Context, e *domain.ScreenEvent) {
			mu.Lock()
			invalid = append(invalid, e.Input)
			mu.Unlock()
		},
		OnDialogEnd: func(_ context.Context, e *domain.DialogEndEvent) {
			mu.Lock()
			ends = append(ends, e.Outcome)
			mu.Unlock()
		},
	}

	eng, _ := newTestEngine(t, engine.WithHooks(hooks))
	ctx := context.Background()

	_, err := eng.Handle(ctx, newDialog("hooked", "*920*1802#"))
	require.NoError(t, err)
	_, err = eng.Handle(ctx, continuation("hooked", "7"))
	require.NoError(t, err)
	_, err = eng.Handle(ctx, continuation("hooked", "1"))
	require.NoError(t, err)
	_, err = eng.Handle(ctx, continuation("hooked", "2"))
	require.NoError(t, err)
	_, err = eng.Handle(ctx, newDialog("hooked-bad", "*999*1802#"))
	require.NoError(t, err)

	assert.Equal(t, []domain.ScreenID{"feeling", "reason"}, entered)
	assert.Equal(t, []string{"7"}, invalid)
	assert.Equal(t, []string{domain.OutcomeCompleted, domain.OutcomeRejected}, ends)
}
