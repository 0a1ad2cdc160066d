// Package session holds the authenticated user/token pair. Token and
// user are always both present or both absent; both layers (memory and
// the local store) are written together.
package session

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/localstore"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
)

// Listener is invoked on every user transition: login, logout, session
// expiry, or an in-place user swap. A nil user means signed out.
type Listener func(user *models.User)

type Store struct {
	mu      sync.RWMutex
	auth    *services.AuthService
	storage *localstore.Store
	logger  zerolog.Logger

	token     string
	user      *models.User
	listeners []Listener
}

// New rehydrates the session from the local store. The read happens
// once, synchronously; there is no background token refresh — expiry is
// discovered reactively through a 401 on a later call.
func New(auth *services.AuthService, storage *localstore.Store, logger zerolog.Logger) *Store {
	s := &Store{
		auth:    auth,
		storage: storage,
		logger:  logger,
	}

	token := storage.Token()
	user := storage.User()
	if token != "" && user != nil {
		s.token = token
		s.user = user
		s.logTokenClaims(token)
		logger.Info().Str("user_id", user.UserID).Str("role", string(user.Role)).Msg("Session rehydrated")
	}

	return s
}

// logTokenClaims decodes the token without verifying it, purely for a
// debug line. The client never enforces expiry locally.
func (s *Store) logTokenClaims(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.logger.Debug().Time("token_expires_at", exp.Time).Msg("Stored token claims")
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when signed out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers a user-change listener. The cart store and the
// app state machine subscribe here; listeners run synchronously in
// registration order.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	data, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.establish(data)
	return data.User, nil
}

func (s *Store) Signup(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	data, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.establish(data)
	return data.User, nil
}

func (s *Store) establish(data *models.AuthData) {
	s.mu.Lock()
	s.token = data.Token
	s.user = data.User
	s.mu.Unlock()

	if err := s.storage.SaveCredentials(data.Token, data.User); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist session")
	}
	s.notify(data.User)
}

// Logout clears memory and the local store synchronously. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	wasAuthenticated := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.ClearCredentials(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear stored session")
	}
	if wasAuthenticated {
		s.logger.Info().Msg("Signed out")
		s.notify(nil)
	}
}

// Expire is the 401 path: same cleanup as Logout, different log line.
// Wired as the API client's OnUnauthorized hook.
func (s *Store) Expire() {
	s.mu.Lock()
	wasAuthenticated := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.ClearCredentials(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear stored session")
	}
	if wasAuthenticated {
		s.logger.Warn().Msg("Session expired, signing out")
		s.notify(nil)
	}
}

// UpdateUser replaces the cached user and re-persists it with the
// existing token.
func (s *Store) UpdateUser(user *models.User) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.user = user
	s.mu.Unlock()

	if err := s.storage.SaveUser(user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist updated user")
	}
	s.notify(user)
}

func (s *Store) notify(user *models.User) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(user)
	}
}
