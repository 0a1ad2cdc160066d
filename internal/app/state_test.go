package app

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/localstore"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

func newTestSession(t *testing.T, user *models.User) *session.Store {
	t.Helper()
	storage, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"), zerolog.Nop())
	require.NoError(t, err)
	if user != nil {
		require.NoError(t, storage.SaveCredentials("tok-1", user))
	}
	return session.New(nil, storage, zerolog.Nop())
}

func TestColdStartWalksSplashRoleAuth(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())

	next, skipped := m.Start()
	assert.Equal(t, StateSplash, next)
	assert.False(t, skipped)

	assert.Equal(t, StateRoleSelection, m.SplashElapsed())
	require.NoError(t, m.ChooseRole(models.RoleCustomer))
	assert.Equal(t, StateAuth, m.State())
	assert.Nil(t, m.MountedRoutes())
}

func TestWarmStartSkipsStraightToApp(t *testing.T) {
	sess := newTestSession(t, &models.User{UserID: "a-1", FullName: "Pat", Role: models.RoleAdmin})
	m := NewMachine(sess, zerolog.Nop())

	next, skipped := m.Start()
	assert.Equal(t, StateAdminApp, next)
	assert.True(t, skipped, "a valid persisted session never shows role selection or auth")
	assert.IsType(t, AdminRoutes{}, m.MountedRoutes())
}

func TestUserRoleWinsOverChosenRole(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())
	m.SplashElapsed()
	require.NoError(t, m.ChooseRole(models.RoleCustomer))

	// The admin signed in through the customer tab; the account decides.
	require.NoError(t, m.AuthSucceeded(&models.User{UserID: "a-1", Role: models.RoleAdmin}))
	assert.Equal(t, StateAdminApp, m.State())
	assert.Equal(t, models.RoleAdmin, m.ChosenRole())
	assert.IsType(t, AdminRoutes{}, m.MountedRoutes())
}

func TestCustomerMountsCustomerRoutes(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())
	m.SplashElapsed()
	require.NoError(t, m.ChooseRole(models.RoleCustomer))
	require.NoError(t, m.AuthSucceeded(&models.User{UserID: "u-1", Role: models.RoleCustomer}))

	assert.Equal(t, StateCustomerApp, m.State())
	assert.IsType(t, CustomerRoutes{}, m.MountedRoutes())
	assert.Contains(t, m.MountedRoutes().Routes(), "cart")
}

func TestInvalidTransitionsRejected(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())

	// Still on the splash screen.
	assert.ErrorIs(t, m.ChooseRole(models.RoleCustomer), ErrInvalidTransition)
	assert.ErrorIs(t, m.AuthSucceeded(&models.User{Role: models.RoleCustomer}), ErrInvalidTransition)

	m.SplashElapsed()
	err := m.ChooseRole(models.Role("baker"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestLogoutReturnsToRoleSelection(t *testing.T) {
	sess := newTestSession(t, &models.User{UserID: "u-1", Role: models.RoleCustomer})
	m := NewMachine(sess, zerolog.Nop())
	_, skipped := m.Start()
	require.True(t, skipped)

	m.Logout()

	assert.Equal(t, StateRoleSelection, m.State())
	assert.Nil(t, m.MountedRoutes())
	assert.Empty(t, m.ChosenRole())
	assert.False(t, sess.IsAuthenticated())
}

func TestSessionExpiryReturnsToRoleSelection(t *testing.T) {
	sess := newTestSession(t, &models.User{UserID: "u-1", Role: models.RoleCustomer})
	m := NewMachine(sess, zerolog.Nop())
	_, skipped := m.Start()
	require.True(t, skipped)

	sess.Expire()

	assert.Equal(t, StateRoleSelection, m.State())
	assert.Nil(t, m.MountedRoutes())
}

func TestBackToRoleSelectionOnlyFromAuth(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())
	m.SplashElapsed()
	require.NoError(t, m.ChooseRole(models.RoleAdmin))

	m.BackToRoleSelection()
	assert.Equal(t, StateRoleSelection, m.State())
	assert.Empty(t, m.ChosenRole())

	// No effect outside the auth screen.
	m.BackToRoleSelection()
	assert.Equal(t, StateRoleSelection, m.State())
}

func TestSplashElapsedIsIdempotentPastSplash(t *testing.T) {
	sess := newTestSession(t, nil)
	m := NewMachine(sess, zerolog.Nop())
	m.SplashElapsed()
	require.NoError(t, m.ChooseRole(models.RoleCustomer))

	assert.Equal(t, StateAuth, m.SplashElapsed(), "a late splash timer must not rewind the flow")
}
