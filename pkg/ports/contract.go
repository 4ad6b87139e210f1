package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yawmintah/ussdflow/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "feeling")
		sess.Captured["feeling"] = "Fine"

		err := store.Save(ctx, sessionID, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sess.CurrentScreen, loaded.CurrentScreen)
		assert.Equal(t, "Fine", loaded.Captured["feeling"])
	})

	t.Run("Save isolates caller state", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "feeling")
		require.NoError(t, store.Save(ctx, sessionID, sess))

		// Mutating the saved pointer must not leak into the store.
		sess.Captured["feeling"] = "Frisky"
		sess.CurrentScreen = "reason"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Captured)
		assert.Equal(t, domain.ScreenID("feeling"), loaded.CurrentScreen)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, "feeling"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		// Idempotent: deleting an absent ID is not an error.
		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete of absent ID should not return error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1, "feeling"))
		_ = store.Save(ctx, id2, domain.NewSession(id2, "feeling"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
