package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/cart"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

type CheckoutState int

const (
	CheckoutReviewing CheckoutState = iota
	CheckoutAddressEntry
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("order submission already in progress")
)

// Checkout is the state machine inside the cart screen: reviewing, then
// the address dialog, then a single order creation followed by a single
// cart clear. A failed submission leaves the dialog open and the cart
// untouched.
type Checkout struct {
	mu       sync.Mutex
	state    CheckoutState
	inFlight bool

	cart    *cart.Store
	orders  *services.OrderService
	session *session.Store
	logger  zerolog.Logger
}

func NewCheckout(c *cart.Store, orders *services.OrderService, sess *session.Store, logger zerolog.Logger) *Checkout {
	return &Checkout{
		state:   CheckoutReviewing,
		cart:    c,
		orders:  orders,
		session: sess,
		logger:  logger,
	}
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin opens the address dialog. Requires a signed-in user and a
// non-empty cart; nothing is sent over the network yet.
func (c *Checkout) Begin() error {
	if c.session.User() == nil {
		return cart.ErrNotAuthenticated
	}
	if c.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CheckoutAddressEntry
	return nil
}

// Cancel closes the dialog without submitting.
func (c *Checkout) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CheckoutReviewing
}

// Confirm validates the address and submits the order. On success the
// cart is cleared and the dialog closed; on failure the dialog stays
// open. A Confirm while one is pending is rejected instead of issuing a
// second create.
func (c *Checkout) Confirm(ctx context.Context, addr models.DeliveryAddress) (*models.Order, error) {
	c.mu.Lock()
	if c.state != CheckoutAddressEntry {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: confirm outside address entry", ErrInvalidTransition)
	}
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	addr = SanitizeAddress(addr)
	if err := ValidateAddress(addr); err != nil {
		return nil, err
	}

	user := c.session.User()
	if user == nil {
		return nil, cart.ErrNotAuthenticated
	}
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := c.orders.Create(ctx, models.CreateOrderRequest{
		UserID:          user.UserID,
		Items:           items,
		DeliveryAddress: addr,
		TotalAmount:     c.cart.Subtotal(),
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("Order submission failed")
		return nil, err
	}

	c.cart.Clear(ctx)

	c.mu.Lock()
	c.state = CheckoutReviewing
	c.mu.Unlock()

	c.logger.Info().Str("order_id", order.OrderID).Msg("Checkout complete")
	return order, nil
}

// SanitizeAddress applies the input filtering the address form does:
// the state keeps letters only, the zip code digits only.
func SanitizeAddress(addr models.DeliveryAddress) models.DeliveryAddress {
	addr.State = filterRunes(addr.State, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' '
	})
	addr.ZipCode = filterRunes(addr.ZipCode, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	addr.Street = strings.TrimSpace(addr.Street)
	addr.City = strings.TrimSpace(addr.City)
	return addr
}

// ValidateAddress gates submission: street, city, and zip code must all
// be non-empty. This runs before any request is issued.
func ValidateAddress(addr models.DeliveryAddress) error {
	var missing []string
	if addr.Street == "" {
		missing = append(missing, "street")
	}
	if addr.City == "" {
		missing = append(missing, "city")
	}
	if addr.ZipCode == "" {
		missing = append(missing, "zip code")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required address fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func filterRunes(s string, keep func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
