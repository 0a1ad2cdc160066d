// Package cart keeps the local copy of the authenticated user's cart
// and reconciles every mutation against the server by refetching: the
// add/update/remove endpoints are called first, then the whole list is
// replaced by a fresh GET. Derived values are computed on call, never
// cached, so they cannot drift from the line items.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/notify"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

// ErrNotAuthenticated rejects cart mutations without a signed-in user.
var ErrNotAuthenticated = errors.New("sign in to use the cart")

type Store struct {
	mu       sync.RWMutex
	items    []models.CartItem
	svc      *services.CartService
	session  *session.Store
	notifier notify.Notifier
	logger   zerolog.Logger
}

// New builds the cart store and subscribes it to session user changes:
// any transition (login, logout, user swap) triggers one refresh.
func New(svc *services.CartService, sess *session.Store, notifier notify.Notifier, logger zerolog.Logger) *Store {
	s := &Store{
		svc:      svc,
		session:  sess,
		notifier: notifier,
		logger:   logger,
	}

	sess.Subscribe(func(user *models.User) {
		if user == nil {
			s.setItems(nil)
			return
		}
		if err := s.Refresh(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Cart refresh after user change failed")
		}
	})

	return s
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount is the sum of quantities across all line items.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity across all line items.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Refresh replaces the local list wholesale with the server cart; the
// last fetch wins, there is no incremental merge. Without a signed-in
// user the cart is forced empty and no request is made.
func (s *Store) Refresh(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		s.setItems(nil)
		return nil
	}

	fetched, err := s.svc.Get(ctx, user.UserID)
	if err != nil {
		return err
	}

	items := make([]models.CartItem, 0, len(fetched))
	for _, p := range fetched {
		items = append(items, models.CartItem{
			ID:        p.ProductID,
			ProductID: p.ProductID,
			Name:      p.ProductName,
			Image:     p.ProductImage,
			Price:     p.Price,
			Quantity:  p.Quantity,
		})
	}
	s.setItems(items)
	return nil
}

// Add puts quantity units of a product in the cart, then refetches to
// reconcile. The error is surfaced as a notification and also returned.
func (s *Store) Add(ctx context.Context, productID string, quantity int) error {
	user := s.session.User()
	if user == nil {
		s.notifier.Error("Please sign in to add items to your cart")
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		quantity = 1
	}

	err := s.svc.Add(ctx, models.AddToCartRequest{
		UserID:    user.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", productID).Msg("Add to cart failed")
		s.notifier.Error("Could not add item to cart. Please try again.")
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Cart refresh after add failed")
	}
	s.notifier.Success("Added to cart")
	return nil
}

// Remove deletes a line item. Failures are reported to the user but not
// re-thrown.
func (s *Store) Remove(ctx context.Context, productID string) error {
	user := s.session.User()
	if user == nil {
		s.notifier.Error("Please sign in to manage your cart")
		return ErrNotAuthenticated
	}

	err := s.svc.Remove(ctx, models.RemoveFromCartRequest{
		UserID:    user.UserID,
		ProductID: productID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", productID).Msg("Remove from cart failed")
		s.notifier.Error("Could not remove item from cart")
		return nil
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Cart refresh after remove failed")
	}
	return nil
}

// UpdateQuantity sets a line item's quantity. A quantity at or below
// zero removes the line instead of leaving a zero or negative entry.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	user := s.session.User()
	if user == nil {
		s.notifier.Error("Please sign in to manage your cart")
		return ErrNotAuthenticated
	}

	err := s.svc.Update(ctx, models.UpdateCartRequest{
		UserID:    user.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", productID).Int("quantity", quantity).Msg("Cart update failed")
		s.notifier.Error("Could not update quantity")
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Cart refresh after update failed")
	}
	return nil
}

// Clear empties the local cart unconditionally, then makes a
// best-effort server clear. A failed remote clear is logged and never
// surfaced; the next Refresh reconciles.
func (s *Store) Clear(ctx context.Context) {
	s.setItems(nil)

	user := s.session.User()
	if user == nil {
		return
	}
	if err := s.svc.Clear(ctx, user.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.UserID).Msg("Server-side cart clear failed")
	}
}

func (s *Store) setItems(items []models.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
