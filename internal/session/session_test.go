package session_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/bakeryapi"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/localstore"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

type env struct {
	sess      *session.Store
	storage   *localstore.Store
	statePath string
	auth      *services.AuthService
	carts     *services.CartService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	srv := bakeryapi.NewServer("test-secret", zerolog.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	statePath := filepath.Join(t.TempDir(), "state.json")
	storage, err := localstore.Open(statePath, zerolog.Nop())
	require.NoError(t, err)

	var sess *session.Store
	client, err := api.New(api.Config{
		BaseURL:     ts.URL + "/api",
		Credentials: storage,
		OnUnauthorized: func() {
			if sess != nil {
				sess.Expire()
			}
		},
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	auth := services.NewAuthService(client, zerolog.Nop())
	sess = session.New(auth, storage, zerolog.Nop())

	return &env{
		sess:      sess,
		storage:   storage,
		statePath: statePath,
		auth:      auth,
		carts:     services.NewCartService(client, zerolog.Nop()),
	}
}

func (e *env) signup(t *testing.T) *models.User {
	t.Helper()
	user, err := e.sess.Signup(context.Background(), models.RegisterRequest{
		FullName: "Maya Khan",
		Email:    "maya@example.com",
		Password: "sugar-and-flour",
	})
	require.NoError(t, err)
	return user
}

func TestSignupEstablishesSession(t *testing.T) {
	e := newEnv(t)

	user := e.signup(t)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, e.sess.IsAuthenticated())
	assert.NotEmpty(t, e.sess.Token())

	// Both layers are written together.
	reloaded, err := localstore.Open(e.statePath, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, e.sess.Token(), reloaded.Token())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, user.UserID, reloaded.User().UserID)
}

func TestRehydratedSessionIsAuthenticated(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t)

	fresh := session.New(e.auth, e.storage, zerolog.Nop())
	assert.True(t, fresh.IsAuthenticated())
	require.NotNil(t, fresh.User())
	assert.Equal(t, user.UserID, fresh.User().UserID)
}

func TestLoginWithWrongPasswordFails(t *testing.T) {
	e := newEnv(t)
	e.signup(t)
	e.sess.Logout()

	_, err := e.sess.Login(context.Background(), "maya@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorContains(t, err, "Invalid email or password")
	assert.False(t, e.sess.IsAuthenticated())
}

func TestLogoutClearsBothLayers(t *testing.T) {
	e := newEnv(t)
	e.signup(t)

	var notified []*models.User
	e.sess.Subscribe(func(u *models.User) { notified = append(notified, u) })

	e.sess.Logout()
	assert.False(t, e.sess.IsAuthenticated())
	assert.Nil(t, e.sess.User())
	require.Len(t, notified, 1)
	assert.Nil(t, notified[0])

	reloaded, err := localstore.Open(e.statePath, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, reloaded.Token())
	assert.Nil(t, reloaded.User())

	// Already signed out: no second notification.
	e.sess.Logout()
	assert.Len(t, notified, 1)
}

func TestRejectedTokenExpiresSession(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t)

	// Replace the stored token with one the backend will not accept.
	require.NoError(t, e.storage.SaveCredentials("not-a-jwt", user))

	var notified []*models.User
	e.sess.Subscribe(func(u *models.User) { notified = append(notified, u) })

	_, err := e.carts.Get(context.Background(), user.UserID)
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	assert.False(t, e.sess.IsAuthenticated())
	require.Len(t, notified, 1)
	assert.Nil(t, notified[0])

	reloaded, err := localstore.Open(e.statePath, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, reloaded.Token())
}

func TestUpdateUserPersistsWithExistingToken(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t)
	token := e.sess.Token()

	var notified []*models.User
	e.sess.Subscribe(func(u *models.User) { notified = append(notified, u) })

	updated := *user
	updated.FullName = "Maya K."
	e.sess.UpdateUser(&updated)

	assert.Equal(t, token, e.sess.Token())
	assert.Equal(t, "Maya K.", e.sess.User().FullName)
	require.Len(t, notified, 1)
	assert.Equal(t, "Maya K.", notified[0].FullName)

	reloaded, err := localstore.Open(e.statePath, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Maya K.", reloaded.User().FullName)
}
