package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/testing/suite"
)

func newSession() *entity.Session {
	session := entity.NewSession("123", "p1", arcade.KindMinesweeper, arcade.Options{Difficulty: arcade.Easy}, time.Now().UTC())
	session.Touch(arcade.StatusOngoing, json.RawMessage(`{"seed":1}`), time.Now().UTC())
	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a session with ID and status
	session := newSession()

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key expires
	require.NoError(t, err)
	ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+session.ID).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_CreateOrUpdate_RefreshesPlayer(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a player about to expire and the session it points at
	playerRepo := NewPlayerRepository(st.Storage, time.Minute)
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "p1", SessionID: "123"}))
	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// When: the session is saved
	err := sessionRepo.CreateOrUpdate(ctx, newSession())

	// Then: the player lives as long as the session
	require.NoError(t, err)
	ttl, err := st.Storage.TTL(ctx, playerKeyPrefix+"p1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Minute)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newSession()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved one
		require.NoError(t, err)
		assert.Equal(t, session.ID, retrieved.ID)
		assert.Equal(t, session.Kind, retrieved.Kind)
		assert.Equal(t, session.Options, retrieved.Options)
		assert.Equal(t, session.Status, retrieved.Status)
		assert.JSONEq(t, string(session.State), string(retrieved.State))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newSession()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and it is gone
		require.NoError(t, err)
		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}
