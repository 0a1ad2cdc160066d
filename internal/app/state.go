// Package app drives the top-level screen flow of the storefront:
// splash, role selection, authentication, and the two mutually
// exclusive route trees for customers and admins.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

type State int

const (
	StateSplash State = iota
	StateRoleSelection
	StateAuth
	StateCustomerApp
	StateAdminApp
)

func (s State) String() string {
	switch s {
	case StateSplash:
		return "splash"
	case StateRoleSelection:
		return "role-selection"
	case StateAuth:
		return "auth"
	case StateCustomerApp:
		return "customer-app"
	case StateAdminApp:
		return "admin-app"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = errors.New("invalid state transition")

// RouteTree is the tagged union over the two navigation surfaces.
// Exactly one tree is mounted at a time, selected once per session.
type RouteTree interface {
	Routes() []string
	routeTree()
}

type CustomerRoutes struct{}

func (CustomerRoutes) routeTree() {}

func (CustomerRoutes) Routes() []string {
	return []string{"home", "menu", "product", "cart", "orders", "favorites", "profile", "contact", "about"}
}

type AdminRoutes struct{}

func (AdminRoutes) routeTree() {}

func (AdminRoutes) Routes() []string {
	return []string{"dashboard", "products", "orders", "customers", "analytics", "settings"}
}

type Machine struct {
	mu      sync.RWMutex
	state   State
	role    models.Role
	routes  RouteTree
	session *session.Store
	logger  zerolog.Logger
}

// NewMachine starts in Splash and subscribes to session changes so that
// a logout or expiry from anywhere lands back on role selection.
func NewMachine(sess *session.Store, logger zerolog.Logger) *Machine {
	m := &Machine{
		state:   StateSplash,
		session: sess,
		logger:  logger,
	}

	sess.Subscribe(func(user *models.User) {
		if user == nil {
			m.handleSignedOut()
		}
	})

	return m
}

func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// MountedRoutes returns the active route tree, nil outside app states.
func (m *Machine) MountedRoutes() RouteTree {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.routes
}

func (m *Machine) ChosenRole() models.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

// Start resolves the splash screen. With a valid persisted session it
// jumps straight to the role's app state — role selection and auth are
// never shown on a warm start. Callers wait out the splash timer only
// when false is returned for skipped.
func (m *Machine) Start() (next State, skippedSplash bool) {
	if user := m.session.User(); user != nil && m.session.IsAuthenticated() {
		m.mountFor(user.Role)
		return m.State(), true
	}
	return StateSplash, false
}

// SplashElapsed moves past the splash once its timer has run out.
func (m *Machine) SplashElapsed() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSplash {
		return m.state
	}
	m.state = StateRoleSelection
	m.logger.Debug().Str("state", m.state.String()).Msg("Splash elapsed")
	return m.state
}

// ChooseRole moves from role selection into the auth screen.
func (m *Machine) ChooseRole(role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRoleSelection {
		return fmt.Errorf("%w: choose role from %s", ErrInvalidTransition, m.state)
	}
	m.role = role
	m.state = StateAuth
	return nil
}

// AuthSucceeded mounts the route tree for the authenticated user. The
// user's actual role wins over the chosen one.
func (m *Machine) AuthSucceeded(user *models.User) error {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	if state != StateAuth {
		return fmt.Errorf("%w: auth success from %s", ErrInvalidTransition, state)
	}

	m.mountFor(user.Role)
	return nil
}

// BackToRoleSelection abandons the auth screen without signing in.
func (m *Machine) BackToRoleSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuth {
		m.state = StateRoleSelection
		m.role = ""
	}
}

// Logout delegates to the session store; the state change itself
// happens in the signed-out subscription, which also covers expiry.
func (m *Machine) Logout() {
	m.session.Logout()
}

func (m *Machine) mountFor(role models.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.role = role
	if role == models.RoleAdmin {
		m.state = StateAdminApp
		m.routes = AdminRoutes{}
	} else {
		m.state = StateCustomerApp
		m.routes = CustomerRoutes{}
	}
	m.logger.Info().Str("state", m.state.String()).Msg("Route tree mounted")
}

func (m *Machine) handleSignedOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateCustomerApp && m.state != StateAdminApp {
		return
	}
	m.state = StateRoleSelection
	m.routes = nil
	m.role = ""
	m.logger.Info().Str("state", m.state.String()).Msg("Returned to role selection")
}
