package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/cart"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/localstore"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/notify"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

// orderBackend serves the cart and order endpoints checkout touches and
// counts order creations and cart clears.
type orderBackend struct {
	mu          sync.Mutex
	items       []models.CartProduct
	createCalls int
	clearCalls  int

	// blockCreate, when set, makes /order/create wait until released.
	blockCreate chan struct{}
	started     chan struct{}
}

func (b *orderBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/order/create":
			b.mu.Lock()
			b.createCalls++
			block, started := b.blockCreate, b.started
			b.mu.Unlock()

			if started != nil {
				started <- struct{}{}
			}
			if block != nil {
				<-block
			}

			var req models.CreateOrderRequest
			json.NewDecoder(r.Body).Decode(&req)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": models.Order{
				OrderID:     "o-1",
				UserID:      req.UserID,
				Items:       req.Items,
				TotalAmount: req.TotalAmount,
				Status:      models.OrderPending,
				CreatedAt:   time.Now(),
			}})

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/cart/clear/"):
			b.mu.Lock()
			b.clearCalls++
			b.items = nil
			b.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"success": true})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/cart/"):
			b.mu.Lock()
			items := b.items
			b.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": items})

		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "no route"})
		}
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func (b *orderBackend) counts() (creates, clears int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createCalls, b.clearCalls
}

func newCheckout(t *testing.T, backend *orderBackend) (*Checkout, *cart.Store) {
	t.Helper()

	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)

	storage, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, storage.SaveCredentials("tok-1", &models.User{
		UserID: "u-1", FullName: "Maya Khan", Role: models.RoleCustomer,
	}))

	client, err := api.New(api.Config{BaseURL: ts.URL, Credentials: storage, Logger: zerolog.Nop()})
	require.NoError(t, err)

	sess := session.New(nil, storage, zerolog.Nop())
	cartStore := cart.New(services.NewCartService(client, zerolog.Nop()), sess, notify.Nop{}, zerolog.Nop())
	require.NoError(t, cartStore.Refresh(context.Background()))

	orders := services.NewOrderService(client, zerolog.Nop())
	return NewCheckout(cartStore, orders, sess, zerolog.Nop()), cartStore
}

func seededBackend() *orderBackend {
	return &orderBackend{
		items: []models.CartProduct{
			{ProductID: "p-1", ProductName: "Croissant", Price: 3.50, Quantity: 2},
		},
	}
}

func validAddress() models.DeliveryAddress {
	return models.DeliveryAddress{
		Street:  "12 Rye Lane",
		City:    "Portland",
		State:   "Oregon",
		ZipCode: "97201",
	}
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	co, _ := newCheckout(t, &orderBackend{})
	assert.ErrorIs(t, co.Begin(), ErrEmptyCart)
	assert.Equal(t, CheckoutReviewing, co.State())
}

func TestConfirmRejectsIncompleteAddress(t *testing.T) {
	backend := seededBackend()
	co, cartStore := newCheckout(t, backend)
	require.NoError(t, co.Begin())

	addr := validAddress()
	addr.Street = "   "
	_, err := co.Confirm(context.Background(), addr)
	require.Error(t, err)
	assert.ErrorContains(t, err, "street")

	creates, clears := backend.counts()
	assert.Zero(t, creates, "validation failures must not reach the server")
	assert.Zero(t, clears)
	assert.Equal(t, CheckoutAddressEntry, co.State(), "dialog stays open after a failed submit")
	assert.Equal(t, 2, cartStore.ItemCount())
}

func TestConfirmSubmitsOnceAndClearsCart(t *testing.T) {
	backend := seededBackend()
	co, cartStore := newCheckout(t, backend)
	require.NoError(t, co.Begin())

	order, err := co.Confirm(context.Background(), validAddress())
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.OrderID)
	assert.InDelta(t, 7.00, order.TotalAmount, 0.001)

	creates, clears := backend.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, clears)
	assert.Zero(t, cartStore.ItemCount())
	assert.Equal(t, CheckoutReviewing, co.State())
}

func TestConfirmOutsideAddressEntryRejected(t *testing.T) {
	co, _ := newCheckout(t, seededBackend())

	_, err := co.Confirm(context.Background(), validAddress())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelClosesDialogWithoutSubmitting(t *testing.T) {
	backend := seededBackend()
	co, cartStore := newCheckout(t, backend)
	require.NoError(t, co.Begin())

	co.Cancel()

	creates, _ := backend.counts()
	assert.Zero(t, creates)
	assert.Equal(t, CheckoutReviewing, co.State())
	assert.Equal(t, 2, cartStore.ItemCount())
}

func TestDoubleSubmitRejectedWhileInFlight(t *testing.T) {
	backend := seededBackend()
	backend.blockCreate = make(chan struct{})
	backend.started = make(chan struct{}, 1)
	co, _ := newCheckout(t, backend)
	require.NoError(t, co.Begin())

	done := make(chan error, 1)
	go func() {
		_, err := co.Confirm(context.Background(), validAddress())
		done <- err
	}()

	// Wait until the first create is on the wire, then try again.
	<-backend.started
	_, err := co.Confirm(context.Background(), validAddress())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(backend.blockCreate)
	require.NoError(t, <-done)

	creates, _ := backend.counts()
	assert.Equal(t, 1, creates, "exactly one order per confirmation")
}

func TestSanitizeAddress(t *testing.T) {
	got := SanitizeAddress(models.DeliveryAddress{
		Street:  "  12 Rye Lane ",
		City:    " Portland",
		State:   "Ore6gon!",
		ZipCode: "97z20-1",
	})

	assert.Equal(t, "12 Rye Lane", got.Street)
	assert.Equal(t, "Portland", got.City)
	assert.Equal(t, "Oregon", got.State)
	assert.Equal(t, "97201", got.ZipCode)
}

func TestValidateAddressListsMissingFields(t *testing.T) {
	err := ValidateAddress(models.DeliveryAddress{State: "Oregon"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "street")
	assert.ErrorContains(t, err, "city")
	assert.ErrorContains(t, err, "zip code")

	assert.NoError(t, ValidateAddress(validAddress()))
}
